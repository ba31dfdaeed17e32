package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind_Wrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NoSuchBranchError())

	assert.True(t, IsKind(err, NoSuchBranch))
	assert.False(t, IsKind(err, NoSuchCommit))
	assert.Equal(t, "checkout: No such branch exists.", err.Error())
}

func TestIsKind_PlainError(t *testing.T) {
	assert.False(t, IsKind(errors.New("boom"), NoSuchBranch))
	assert.False(t, IsKind(nil, NoSuchBranch))
}

func TestIsPrecondition(t *testing.T) {
	assert.True(t, IsPrecondition(SelfMergeError()))
	assert.True(t, IsPrecondition(fmt.Errorf("wrap: %w", UncommittedChangesError())))
	assert.False(t, IsPrecondition(IntegrityErrorf("ref %s points to missing commit %s", "master", "abc")))
	assert.False(t, IsPrecondition(errors.New("disk full")))
}

func TestMessagesAreVerbatim(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{AlreadyInitializedError(), "A Gitlet version-control system already exists in the current directory."},
		{FileNotFoundError(), "File does not exist."},
		{NoChangesError(), "No changes added to the commit."},
		{EmptyMessageError(), "Please enter a commit message."},
		{CannotRemoveCurrentError(), "Cannot remove the current branch."},
		{SelfMergeError(), "Cannot merge a branch with itself."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
