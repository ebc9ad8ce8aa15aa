package memory

import (
	"context"
	"sort"

	"github.com/aretw0/pips/pkg/domain"
)

// Library implements ports.Library using an in-memory map.
// Useful for tests and embedded setups without a library directory.
type Library struct {
	entries map[string]domain.Entry
}

// NewLibrary creates a new in-memory library from the given entries.
// Entries without an ID are skipped.
func NewLibrary(entries ...domain.Entry) *Library {
	m := make(map[string]domain.Entry, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		m[e.ID] = e
	}
	return &Library{entries: m}
}

// Get retrieves a single entry by ID.
func (l *Library) Get(ctx context.Context, id string) (domain.Entry, error) {
	entry, ok := l.entries[id]
	if !ok {
		return domain.Entry{}, domain.ErrEntryNotFound
	}
	return entry, nil
}

// List returns all entries sorted by ID.
func (l *Library) List(ctx context.Context) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}
