/*
Package domain defines the shared value objects of the pips engine.

These types carry no behavior beyond construction and validation; the
probability machinery lives in pkg/dist and the expression grammar in the
compiler. Adapters (stores, libraries, transports) exchange these types so
that the core stays decoupled from persistence and presentation concerns.
*/
package domain
