/*
Package dist implements finite discrete probability distributions over
numeric outcomes, the computational core of pips.

A Distribution maps outcome values to non-negative weights. Weights are
unnormalized mass: a fair d6 carries weight 1 on each of 1..6 for a total of
6, and combining distributions multiplies totals. All combinators (Add, Sub,
Shift, Compare) are pure and return fresh instances; AddEvent is the single
explicit builder mutation for callers accumulating events into an instance
they own.

Arithmetic between distributions is full convolution: Add enumerates the
cross product of both supports and accumulates the product of weights at the
summed outcome. This is the probability-generating-function product and runs
in O(|a|·|b|).

Zero-weight outcomes are retained, never pruned. An explicit {3: 0} entry
survives arithmetic and is visible to EqualsValue; the only place a zero is
omitted is in Compare results, which materialize an outcome key only when
its accumulated mass is nonzero.
*/
package dist
