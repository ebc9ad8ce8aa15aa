package dist

// Operator is a binary function applied to a pair of outcomes during
// convolution.
type Operator func(a, b float64) float64

// Predicate is a binary comparison applied to a pair of outcomes.
type Predicate func(a, b float64) bool

// Comparison predicates for Compare.
var (
	Less           Predicate = func(a, b float64) bool { return a < b }
	LessOrEqual    Predicate = func(a, b float64) bool { return a <= b }
	Greater        Predicate = func(a, b float64) bool { return a > b }
	GreaterOrEqual Predicate = func(a, b float64) bool { return a >= b }
	EqualTo        Predicate = func(a, b float64) bool { return a == b }
	NotEqualTo     Predicate = func(a, b float64) bool { return a != b }
)

// Combine convolves two distributions under the given operator: for every
// outcome pair (a, b) the result accumulates weight wa*wb at op(a, b).
// Runs in O(|d|·|other|). Both operands are left untouched.
func (d *Distribution) Combine(other *Distribution, op Operator) *Distribution {
	result := &Distribution{weights: make(map[float64]float64, len(d.weights)*len(other.weights))}
	for a, wa := range d.weights {
		for b, wb := range other.weights {
			result.weights[op(a, b)] += wa * wb
		}
	}
	return result
}

// Add returns the distribution of the sum of independent draws from d and
// other (the PGF product).
func (d *Distribution) Add(other *Distribution) *Distribution {
	return d.Combine(other, func(a, b float64) float64 { return a + b })
}

// Sub returns the distribution of a draw from d minus an independent draw
// from other.
func (d *Distribution) Sub(other *Distribution) *Distribution {
	return d.Combine(other, func(a, b float64) float64 { return a - b })
}

// Shift returns a copy with every outcome offset by the scalar; weights are
// unchanged. Equivalent to Add(FromValue(offset)) without the convolution.
func (d *Distribution) Shift(offset float64) *Distribution {
	shifted := &Distribution{weights: make(map[float64]float64, len(d.weights))}
	for outcome, weight := range d.weights {
		shifted.weights[outcome+offset] = weight
	}
	return shifted
}

// Compare enumerates the cross product of both supports and splits the
// combined mass by whether the predicate holds, yielding a two-outcome
// distribution: {1: mass where pred(a, b), 0: mass where not}. An outcome
// key is present only when its accumulated weight is nonzero, so a certain
// comparison collapses to a single key.
func (d *Distribution) Compare(pred Predicate, other *Distribution) *Distribution {
	var massTrue, massFalse float64
	for a, wa := range d.weights {
		for b, wb := range other.weights {
			if pred(a, b) {
				massTrue += wa * wb
			} else {
				massFalse += wa * wb
			}
		}
	}

	result := New()
	if massTrue != 0 {
		result.weights[1] = massTrue
	}
	if massFalse != 0 {
		result.weights[0] = massFalse
	}
	return result
}
