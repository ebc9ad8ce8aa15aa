package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/pips/pkg/domain"
)

// Library adapts a Loam repository to the ports.Library interface: a
// directory of markdown/JSON documents whose frontmatter carries the dice
// expression. The document body, when present, becomes the description.
type Library struct {
	Repo *loam.TypedRepository[EntryMetadata]
}

// New creates a Loam-backed library from a directory path.
// The repository is opened read-only; the engine never modifies the library.
func New(path string) (*Library, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return NewFromRepo(loam.NewTypedRepository[EntryMetadata](repo)), nil
}

// NewFromRepo creates a library from an existing typed repository.
func NewFromRepo(repo *loam.TypedRepository[EntryMetadata]) *Library {
	return &Library{Repo: repo}
}

// Get retrieves a library entry by ID.
func (l *Library) Get(ctx context.Context, id string) (domain.Entry, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %q: %v", domain.ErrEntryNotFound, id, err)
	}
	return l.toEntry(doc.ID, doc.Data, doc.Content)
}

// List returns all entries in the library, sorted by ID.
func (l *Library) List(ctx context.Context) ([]domain.Entry, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	entries := make([]domain.Entry, 0, len(docs))
	for _, doc := range docs {
		entry, err := l.toEntry(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (l *Library) toEntry(docID string, meta EntryMetadata, content string) (domain.Entry, error) {
	id := meta.ID
	if id == "" {
		id = docID
	}
	id = trimExtension(id)

	if meta.Expression == "" {
		return domain.Entry{}, fmt.Errorf("library entry %q has no expression", id)
	}

	description := meta.Description
	if description == "" {
		description = strings.TrimSpace(content)
	}

	return domain.Entry{
		ID:          id,
		Expression:  meta.Expression,
		Description: description,
	}, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
