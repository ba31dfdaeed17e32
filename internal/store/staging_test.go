package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestIndex creates a staging index in a temp directory for testing.
func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := OpenIndex(filepath.Join(t.TempDir(), "index"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndex_StartsClean(t *testing.T) {
	idx := newTestIndex(t)

	clean, err := idx.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	snap, err := idx.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.IsClean())
}

func TestIndex_AdditionAndRemovalAreExclusive(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.StageAddition("a.txt", "b1"))
	require.NoError(t, idx.StageRemoval("a.txt"))

	snap, err := idx.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Added)
	assert.Equal(t, []string{"a.txt"}, snap.RemovedNames())

	require.NoError(t, idx.StageAddition("a.txt", "b2"))
	snap, err = idx.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "b2"}, snap.Added)
	assert.Empty(t, snap.Removed)
}

func TestIndex_StagedLookup(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.StageAddition("a.txt", "b1"))

	id, ok, err := idx.Staged("a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b1", id)

	_, ok, err = idx.Staged("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIndex_Unstage(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.StageAddition("a.txt", "b1"))
	require.NoError(t, idx.StageRemoval("b.txt"))

	require.NoError(t, idx.Unstage("a.txt"))
	require.NoError(t, idx.Unstage("b.txt"))
	require.NoError(t, idx.Unstage("never-staged"))

	clean, err := idx.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestIndex_Clear(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.StageAddition("a.txt", "b1"))
	require.NoError(t, idx.StageRemoval("b.txt"))

	clean, err := idx.IsClean()
	require.NoError(t, err)
	assert.False(t, clean)

	require.NoError(t, idx.Clear())

	clean, err = idx.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	// buckets are usable after clearing
	require.NoError(t, idx.StageAddition("c.txt", "b3"))
}

func TestIndex_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	idx, err := OpenIndex(path)
	require.NoError(t, err)
	require.NoError(t, idx.StageAddition("a.txt", "b1"))
	require.NoError(t, idx.Close())

	idx, err = OpenIndex(path)
	require.NoError(t, err)
	defer idx.Close()

	snap, err := idx.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "b1"}, snap.Added)
}

func TestStaging_SortedNamesAndApply(t *testing.T) {
	s := &Staging{
		Added:   map[string]string{"c": "3", "a": "1"},
		Removed: map[string]struct{}{"z": {}, "b": {}},
	}
	assert.Equal(t, []string{"a", "c"}, s.AddedNames())
	assert.Equal(t, []string{"b", "z"}, s.RemovedNames())

	tracked := map[string]string{"a": "0", "b": "2", "d": "4"}
	assert.Equal(t, map[string]string{"a": "1", "c": "3", "d": "4"}, s.Apply(tracked))
	assert.Equal(t, map[string]string{"a": "0", "b": "2", "d": "4"}, tracked)
}

func TestIndex_CatalogPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	idx, err := OpenIndex(path)
	require.NoError(t, err)

	pending, err := idx.CatalogPending()
	require.NoError(t, err)
	assert.False(t, pending)

	require.NoError(t, idx.SetCatalogPending(true))
	require.NoError(t, idx.Clear())
	clean, err := idx.IsClean()
	require.NoError(t, err)
	assert.True(t, clean, "the mark is not staged content")
	require.NoError(t, idx.Close())

	idx, err = OpenIndex(path)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	pending, err = idx.CatalogPending()
	require.NoError(t, err)
	assert.True(t, pending, "the mark survives Clear and reopen")

	require.NoError(t, idx.SetCatalogPending(false))
	pending, err = idx.CatalogPending()
	require.NoError(t, err)
	assert.False(t, pending)
}
