package checkpoint

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemory_LoadSave verifies the read-merge-write contract on the
// in-memory store.
func TestMemory_LoadSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	// Absent state loads as an empty set.
	set, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, set)

	require.NoError(t, store.Save(ctx, Set{2: {}, 3: {}}))
	require.NoError(t, store.Save(ctx, Set{3: {}, 4: {}}))

	set, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, set, 3)
	for _, n := range []int64{2, 3, 4} {
		assert.True(t, set.Contains(n), "missing %d", n)
	}
}

// TestMemory_SnapshotIsolated verifies Load returns a snapshot, not a
// live reference.
func TestMemory_SnapshotIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.Save(ctx, Set{1: {}}))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	snapshot[99] = struct{}{}

	fresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, fresh.Contains(99), "snapshot mutation leaked into the store")
}

// TestMemory_ConcurrentSavers verifies no entries are lost under
// concurrent writes: the union semantics the batch runner depends on.
func TestMemory_ConcurrentSavers(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := int64(w * 100); n < int64(w*100+100); n++ {
				_ = store.Save(ctx, Set{n: {}})
			}
		}(w)
	}
	wg.Wait()

	set, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, set, 800, "concurrent savers lost entries")
}

// TestBadger_RoundTrip verifies the persistent store against an in-memory
// BadgerDB.
func TestBadger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadger(InMemoryConfig())
	require.NoError(t, err)
	defer store.Close()

	set, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, set, "fresh database should load as an empty set")

	require.NoError(t, store.Save(ctx, Set{2: {}, 1000000: {}, -5: {}}))

	set, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, set, 3)
	assert.True(t, set.Contains(2))
	assert.True(t, set.Contains(1000000))
	assert.True(t, set.Contains(-5))
}

// TestBadger_UnionAcrossSaves verifies successive saves accumulate
// rather than overwrite.
func TestBadger_UnionAcrossSaves(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadger(InMemoryConfig())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, Set{1: {}, 2: {}}))
	require.NoError(t, store.Save(ctx, Set{2: {}, 3: {}}))

	set, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, set, 3, "second save truncated the first")
}

// TestBadger_Persistence verifies entries survive close and reopen.
func TestBadger_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := DefaultConfig(dir)
	store, err := OpenBadger(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, Set{42: {}}))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	set, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, set.Contains(42), "entry lost across reopen")
}

// TestSet_Union verifies the basic set algebra the runner leans on.
func TestSet_Union(t *testing.T) {
	s := Set{1: {}}
	s.Union(Set{1: {}, 2: {}})
	assert.Len(t, s, 2)
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(2))
}
