package core

import (
	"testing"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_FileNotFound(t *testing.T) {
	tr := newTestRepo(t)

	err := tr.Add("missing.txt")
	assert.True(t, errs.IsKind(err, errs.FileNotFound))

	err = tr.Add("../outside.txt")
	assert.True(t, errs.IsKind(err, errs.FileNotFound))
}

func TestAdd_StagesNewFile(t *testing.T) {
	tr := newTestRepo(t)
	tr.write(t, "a.txt", "hello")

	require.NoError(t, tr.Add("a.txt"))

	snap, err := tr.index.Snapshot()
	require.NoError(t, err)
	require.Contains(t, snap.Added, "a.txt")

	blob, err := tr.objects.GetBlob(snap.Added["a.txt"])
	require.NoError(t, err)
	assert.Equal(t, "hello", string(blob.Content))
}

func TestAdd_NestedPath(t *testing.T) {
	tr := newTestRepo(t)
	tr.write(t, "dir/sub/a.txt", "x")

	require.NoError(t, tr.Add("dir/sub/a.txt"))
	c, err := tr.Commit("nested")
	require.NoError(t, err)
	assert.True(t, c.Tracks("dir/sub/a.txt"))
}

func TestAdd_RestagingReplacesBlob(t *testing.T) {
	tr := newTestRepo(t)
	tr.write(t, "a.txt", "v1")
	require.NoError(t, tr.Add("a.txt"))
	first, _, err := tr.index.Staged("a.txt")
	require.NoError(t, err)

	tr.write(t, "a.txt", "v2")
	require.NoError(t, tr.Add("a.txt"))
	second, _, err := tr.index.Staged("a.txt")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAdd_UnchangedFromHeadUnstages(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "v1", "c1")

	tr.write(t, "a.txt", "v2")
	require.NoError(t, tr.Add("a.txt"))
	tr.write(t, "a.txt", "v1")
	require.NoError(t, tr.Add("a.txt"))

	clean, err := tr.index.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestAdd_ClearsPendingRemoval(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "v1", "c1")

	require.NoError(t, tr.Remove("a.txt"))
	assert.False(t, tr.exists("a.txt"))

	tr.write(t, "a.txt", "v1")
	require.NoError(t, tr.Add("a.txt"))

	snap, err := tr.index.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.IsClean())
}

func TestAdd_ModifiedAfterRemovalStagesAddition(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "v1", "c1")

	require.NoError(t, tr.Remove("a.txt"))
	tr.write(t, "a.txt", "v2")
	require.NoError(t, tr.Add("a.txt"))

	snap, err := tr.index.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, snap.AddedNames())
	assert.Empty(t, snap.Removed)
}

func TestRemove_NothingToRemove(t *testing.T) {
	tr := newTestRepo(t)
	tr.write(t, "untracked.txt", "x")

	err := tr.Remove("untracked.txt")
	assert.True(t, errs.IsKind(err, errs.NothingToRemove))
	assert.True(t, tr.exists("untracked.txt"))

	err = tr.Remove("never-existed.txt")
	assert.True(t, errs.IsKind(err, errs.NothingToRemove))
}

func TestRemove_StagedOnlyUnstagesAndKeepsFile(t *testing.T) {
	tr := newTestRepo(t)
	tr.write(t, "a.txt", "x")
	require.NoError(t, tr.Add("a.txt"))

	require.NoError(t, tr.Remove("a.txt"))

	assert.True(t, tr.exists("a.txt"))
	snap, err := tr.index.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.IsClean())
}

func TestRemove_TrackedDeletesAndStagesRemoval(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "x", "c1")
	tr.write(t, "a.txt", "edited")
	require.NoError(t, tr.Add("a.txt"))

	require.NoError(t, tr.Remove("a.txt"))

	assert.False(t, tr.exists("a.txt"))
	snap, err := tr.index.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Added, "pending addition dropped")
	assert.Equal(t, []string{"a.txt"}, snap.RemovedNames())
}

func TestRemove_TrackedButAlreadyDeleted(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "x", "c1")
	tr.remove(t, "a.txt")

	require.NoError(t, tr.Remove("a.txt"))

	snap, err := tr.index.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, snap.RemovedNames())
}
