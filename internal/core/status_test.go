package core

import (
	"testing"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_FreshRepository(t *testing.T) {
	tr := newTestRepo(t)

	status, err := tr.Status()
	require.NoError(t, err)
	assert.Equal(t, "master", status.CurrentBranch)
	assert.Equal(t, []string{"master"}, status.Branches)
	assert.True(t, status.IsClean())
}

func TestStatus_AllSections(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "tracked.txt", "t", "c1")
	tr.commitFile(t, "gone.txt", "g", "c2")
	tr.commitFile(t, "edited.txt", "e", "c3")
	tr.commitFile(t, "removed.txt", "r", "c4")
	require.NoError(t, tr.CreateBranch("feature"))

	tr.write(t, "new.txt", "n")
	require.NoError(t, tr.Add("new.txt"))
	require.NoError(t, tr.Remove("removed.txt"))
	tr.remove(t, "gone.txt")
	tr.write(t, "edited.txt", "edited")
	tr.write(t, "z/untracked.txt", "u")

	status, err := tr.Status()
	require.NoError(t, err)

	assert.Equal(t, []string{"feature", "master"}, status.Branches)
	assert.Equal(t, []string{"new.txt"}, status.Staged)
	assert.Equal(t, []string{"removed.txt"}, status.Removed)
	assert.Equal(t, []models.Modification{
		{Filename: "edited.txt", Kind: models.Modified},
		{Filename: "gone.txt", Kind: models.Deleted},
	}, status.Modifications)
	assert.Equal(t, []string{"z/untracked.txt"}, status.Untracked)
}

func TestStatus_StagedFileChangedAgain(t *testing.T) {
	tr := newTestRepo(t)
	tr.write(t, "a.txt", "first")
	require.NoError(t, tr.Add("a.txt"))
	tr.write(t, "a.txt", "second")

	status, err := tr.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, status.Staged)
	assert.Equal(t, []models.Modification{{Filename: "a.txt", Kind: models.Modified}}, status.Modifications)
	assert.Empty(t, status.Untracked)

	tr.remove(t, "a.txt")
	status, err = tr.Status()
	require.NoError(t, err)
	assert.Equal(t, []models.Modification{{Filename: "a.txt", Kind: models.Deleted}}, status.Modifications)
}

func TestStatus_RemovedFileRecreatedIsUntracked(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "1", "c1")
	require.NoError(t, tr.Remove("a.txt"))
	tr.write(t, "a.txt", "back")

	status, err := tr.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, status.Removed)
	assert.Empty(t, status.Modifications)
	assert.Equal(t, []string{"a.txt"}, status.Untracked)
}

func TestStatus_ReAddUnchangedClearsRemoval(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "1", "c1")
	require.NoError(t, tr.Remove("a.txt"))
	tr.write(t, "a.txt", "1")
	require.NoError(t, tr.Add("a.txt"))

	status, err := tr.Status()
	require.NoError(t, err)
	assert.True(t, status.IsClean())
}
