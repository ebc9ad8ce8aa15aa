package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pips/pkg/adapters/memory"
	"github.com/aretw0/pips/pkg/domain"
)

func TestManager_LoadOrStart(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	state, err := m.LoadOrStart(ctx, "alpha")
	require.NoError(t, err)
	assert.Empty(t, state.Defs)
	assert.Empty(t, state.History)

	// The ID is reserved: a direct Load now succeeds.
	loaded, err := m.Load(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestManager_Load_NotFound(t *testing.T) {
	m := NewManager(memory.NewStore())

	_, err := m.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_Define(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	require.NoError(t, m.Define(ctx, "alpha", "attack", "1D20+5"))
	require.NoError(t, m.Define(ctx, "alpha", "damage", "2D6"))

	state, err := m.Load(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "1D20+5", state.Defs["attack"])
	assert.Equal(t, "2D6", state.Defs["damage"])
	assert.Equal(t, []string{"let attack = 1D20+5", "let damage = 2D6"}, state.History)
}

func TestManager_Record(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	require.NoError(t, m.Record(ctx, "alpha", "2D6+1"))
	require.NoError(t, m.Record(ctx, "alpha", "1D20"))

	state, err := m.Load(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"2D6+1", "1D20"}, state.History)
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	_, err := m.LoadOrStart(ctx, "alpha")
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "alpha"))

	_, err = m.Load(ctx, "alpha")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ConcurrentDefines(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	const writers = 32
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			require.NoError(t, m.Record(ctx, "shared", "1D6"))
		}()
	}
	wg.Wait()

	state, err := m.Load(ctx, "shared")
	require.NoError(t, err)
	// Every write lands: the per-session lock serializes read-modify-write.
	assert.Len(t, state.History, writers)
}

func TestManager_List(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewStore())

	_, err := m.LoadOrStart(ctx, "alpha")
	require.NoError(t, err)
	_, err = m.LoadOrStart(ctx, "beta")
	require.NoError(t, err)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, ids)
}
