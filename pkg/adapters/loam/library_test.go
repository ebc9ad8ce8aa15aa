package loam_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loamAdapter "github.com/aretw0/pips/pkg/adapters/loam"
	"github.com/aretw0/pips/pkg/domain"
)

func newTestLibrary(t *testing.T, files map[string]string) *loamAdapter.Library {
	t.Helper()
	tmpDir := t.TempDir()

	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	repo, err := loam.Init(tmpDir, loam.WithVersioning(false))
	require.NoError(t, err)
	return loamAdapter.NewFromRepo(loam.NewTypedRepository[loamAdapter.EntryMetadata](repo))
}

func TestLibrary_List(t *testing.T) {
	library := newTestLibrary(t, map[string]string{
		"fireball.md": `---
expression: 8D6
description: Fireball damage
---`,
		"attack.md": `---
expression: 1D20+5
---
Longsword attack with proficiency`,
		"sneak.json": `{
  "expression": "3D6"
}`,
	})

	entries, err := library.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Sorted by ID, extensions stripped.
	assert.Equal(t, "attack", entries[0].ID)
	assert.Equal(t, "1D20+5", entries[0].Expression)
	assert.Equal(t, "Longsword attack with proficiency", entries[0].Description)

	assert.Equal(t, "fireball", entries[1].ID)
	assert.Equal(t, "Fireball damage", entries[1].Description)

	assert.Equal(t, "sneak", entries[2].ID)
	assert.Equal(t, "3D6", entries[2].Expression)
}

func TestLibrary_Get(t *testing.T) {
	library := newTestLibrary(t, map[string]string{
		"fireball.md": `---
expression: 8D6
---`,
	})

	entry, err := library.Get(context.Background(), "fireball")
	require.NoError(t, err)
	assert.Equal(t, "fireball", entry.ID)
	assert.Equal(t, "8D6", entry.Expression)
}

func TestLibrary_Get_NotFound(t *testing.T) {
	library := newTestLibrary(t, map[string]string{})

	_, err := library.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestLibrary_MissingExpression(t *testing.T) {
	library := newTestLibrary(t, map[string]string{
		"broken.md": `---
description: no expression here
---`,
	})

	_, err := library.List(context.Background())
	assert.ErrorContains(t, err, "no expression")
}
