// Package middleware provides composable wrappers for state stores.
package middleware

import "github.com/aretw0/pips/pkg/ports"

// Middleware allows wrapping a StateStore to add behavior.
type Middleware func(ports.StateStore) ports.StateStore
