package ports

import (
	"context"

	"github.com/aretw0/pips/pkg/domain"
)

// Library defines how the engine retrieves named dice expressions.
// This allows the storage layer (Loam directory, memory) to be decoupled.
type Library interface {
	// Get retrieves a single entry by ID.
	// Returns domain.ErrEntryNotFound if the entry does not exist.
	Get(ctx context.Context, id string) (domain.Entry, error)

	// List returns all entries, sorted by ID.
	List(ctx context.Context) ([]domain.Entry, error)
}
