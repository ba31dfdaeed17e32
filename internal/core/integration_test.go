package core

import (
	"strings"
	"testing"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_BranchCommitAndSwitchBack(t *testing.T) {
	tr := newTestRepo(t)

	tr.commitFile(t, "a.txt", "1", "c1")
	tr.commitFile(t, "a.txt", "2", "c2")
	require.NoError(t, tr.CreateBranch("b1"))
	require.NoError(t, tr.CheckoutBranch("b1"))
	tr.commitFile(t, "a.txt", "3", "c3")

	require.NoError(t, tr.CheckoutBranch("master"))
	assert.Equal(t, "2", tr.read(t, "a.txt"))

	require.NoError(t, tr.CheckoutBranch("b1"))
	assert.Equal(t, "3", tr.read(t, "a.txt"))
}

func TestWorkflow_BranchDoesNotSwitch(t *testing.T) {
	tr := newTestRepo(t)

	tr.commitFile(t, "a.txt", "1", "c1")
	c2 := tr.commitFile(t, "a.txt", "2", "c2")
	require.NoError(t, tr.CreateBranch("b1"))
	c3 := tr.commitFile(t, "a.txt", "3", "c3")

	// c3 lands on master; b1 still points at c2
	assert.Equal(t, c3.ID, tr.branchTip(t, "master"))
	assert.Equal(t, c2.ID, tr.branchTip(t, "b1"))

	err := tr.CheckoutBranch("master")
	assert.True(t, errs.IsKind(err, errs.AlreadyOnBranch))

	require.NoError(t, tr.CheckoutBranch("b1"))
	assert.Equal(t, "2", tr.read(t, "a.txt"))
}

func TestWorkflow_SelfMergeAlwaysRejected(t *testing.T) {
	tr := newTestRepo(t)
	for i := 0; i < 5; i++ {
		_, err := tr.Merge("master")
		assert.True(t, errs.IsKind(err, errs.SelfMerge))
		tr.commitFile(t, "a.txt", strings.Repeat("x", i+1), "c")
	}
}

func TestWorkflow_MergeConflictThenResolve(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "f.txt", "base\n", "base")
	require.NoError(t, tr.CreateBranch("other"))
	tr.commitFile(t, "f.txt", "ours\n", "ours")
	require.NoError(t, tr.CheckoutBranch("other"))
	tr.commitFile(t, "f.txt", "theirs\n", "theirs")
	require.NoError(t, tr.CheckoutBranch("master"))

	result, err := tr.Merge("other")
	require.NoError(t, err)
	require.True(t, result.HasConflicts())
	content := tr.read(t, "f.txt")
	assert.Contains(t, content, "<<<<<<< HEAD")
	assert.Contains(t, content, ">>>>>>>")

	resolved := tr.commitFile(t, "f.txt", "resolved\n", "resolve")
	assert.Equal(t, []string{result.MergeCommit.ID}, resolved.Parents)

	// other is now an ancestor of master
	again, err := tr.Merge("other")
	require.NoError(t, err)
	assert.True(t, again.UpToDate)
}

func TestWorkflow_SurvivesReopen(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitFile(t, "a.txt", "1", "c1")
	require.NoError(t, tr.CreateBranch("b1"))
	require.NoError(t, tr.CheckoutBranch("b1"))
	c2 := tr.commitFile(t, "a.txt", "2", "c2")
	tr.write(t, "b.txt", "staged")
	require.NoError(t, tr.Add("b.txt"))
	require.NoError(t, tr.Repository.Close())

	repo, err := Open(tr.root, Options{})
	require.NoError(t, err)
	tr.Repository = repo

	status, err := tr.Status()
	require.NoError(t, err)
	assert.Equal(t, "b1", status.CurrentBranch)
	assert.Equal(t, []string{"b.txt"}, status.Staged)

	log, err := tr.Log()
	require.NoError(t, err)
	assert.Equal(t, c2.ID, log[0].ID)
}
