package store

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRefStore(t *testing.T) *RefStore {
	t.Helper()
	return NewRefStore(memfs.New(), nil)
}

func TestRefStore_SetGetBranch(t *testing.T) {
	s := newTestRefStore(t)

	branch, err := s.GetBranch("master")
	require.NoError(t, err)
	assert.Nil(t, branch)

	require.NoError(t, s.SetBranch("master", "abc123"))

	branch, err = s.GetBranch("master")
	require.NoError(t, err)
	require.NotNil(t, branch)
	assert.Equal(t, "master", branch.Name)
	assert.Equal(t, "abc123", branch.CommitID)

	require.NoError(t, s.SetBranch("master", "def456"))
	branch, err = s.GetBranch("master")
	require.NoError(t, err)
	assert.Equal(t, "def456", branch.CommitID)
}

func TestRefStore_BranchFileFormat(t *testing.T) {
	fs := memfs.New()
	s := NewRefStore(fs, nil)
	require.NoError(t, s.SetBranch("dev", "abc"))
	require.NoError(t, s.SetCurrentBranch("dev"))

	data, err := util.ReadFile(fs, "refs/heads/dev")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", string(data))

	data, err = util.ReadFile(fs, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/dev\n", string(data))
}

func TestRefStore_Head(t *testing.T) {
	s := newTestRefStore(t)
	require.NoError(t, s.SetBranch("master", "c1"))
	require.NoError(t, s.SetCurrentBranch("master"))

	head, err := s.Head()
	require.NoError(t, err)
	assert.Equal(t, "master", head.BranchName)
	assert.Equal(t, "c1", head.CommitID)

	require.NoError(t, s.SetCurrentBranch("ghost"))
	_, err = s.Head()
	assert.Error(t, err)
}

func TestRefStore_CurrentBranchRejectsDetachedHead(t *testing.T) {
	fs := memfs.New()
	s := NewRefStore(fs, nil)
	require.NoError(t, util.WriteFile(fs, "HEAD", []byte("abc123\n"), 0644))

	_, err := s.CurrentBranch()
	assert.Error(t, err)
}

func TestRefStore_ListBranchesSorted(t *testing.T) {
	s := newTestRefStore(t)
	require.NoError(t, s.SetBranch("zeta", "1"))
	require.NoError(t, s.SetBranch("alpha", "2"))
	require.NoError(t, s.SetBranch("master", "3"))

	branches, err := s.ListBranches()
	require.NoError(t, err)
	require.Len(t, branches, 3)
	assert.Equal(t, "alpha", branches[0].Name)
	assert.Equal(t, "master", branches[1].Name)
	assert.Equal(t, "zeta", branches[2].Name)
}

func TestRefStore_ListBranchesEmpty(t *testing.T) {
	branches, err := newTestRefStore(t).ListBranches()
	require.NoError(t, err)
	assert.Empty(t, branches)
}

func TestRefStore_DeleteBranch(t *testing.T) {
	s := newTestRefStore(t)
	require.NoError(t, s.SetBranch("dev", "1"))

	require.NoError(t, s.DeleteBranch("dev"))
	exists, err := s.BranchExists("dev")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, s.DeleteBranch("dev"))
}

func TestRefStore_RejectsInvalidNames(t *testing.T) {
	s := newTestRefStore(t)
	assert.Error(t, s.SetBranch("a/b", "1"))
	assert.Error(t, s.SetBranch("", "1"))
	assert.Error(t, s.SetCurrentBranch("../x"))

	branch, err := s.GetBranch("../HEAD")
	require.NoError(t, err)
	assert.Nil(t, branch)
}

func TestValidBranchName(t *testing.T) {
	for _, name := range []string{"master", "dev", "feature-1", "v1.2", "under_score"} {
		assert.True(t, ValidBranchName(name), name)
	}
	for _, name := range []string{"", ".", "..", ".hidden", "-flag", "a/b", `a\b`, "has space", "tab\t"} {
		assert.False(t, ValidBranchName(name), name)
	}
}
