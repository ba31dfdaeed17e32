// Package errs defines the user-facing error taxonomy of gitlet.
//
// Precondition failures carry a Kind and the exact message printed to the
// user. They are detected before any mutation, so an *Error implies the
// working tree and history are unchanged.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure
type Kind string

const (
	AlreadyInitialized    Kind = "ALREADY_INITIALIZED"
	NotInitialized        Kind = "NOT_INITIALIZED"
	FileNotFound          Kind = "FILE_NOT_FOUND"
	NothingToRemove       Kind = "NOTHING_TO_REMOVE"
	EmptyMessage          Kind = "EMPTY_MESSAGE"
	NoChanges             Kind = "NO_CHANGES"
	NoSuchBranch          Kind = "NO_SUCH_BRANCH"
	AlreadyOnBranch       Kind = "ALREADY_ON_BRANCH"
	UntrackedFileConflict Kind = "UNTRACKED_FILE_CONFLICT"
	NoSuchCommit          Kind = "NO_SUCH_COMMIT"
	FileNotInCommit       Kind = "FILE_NOT_IN_COMMIT"
	BranchExists          Kind = "BRANCH_EXISTS"
	InvalidBranchName     Kind = "INVALID_BRANCH_NAME"
	CannotRemoveCurrent   Kind = "CANNOT_REMOVE_CURRENT"
	UncommittedChanges    Kind = "UNCOMMITTED_CHANGES"
	SelfMerge             Kind = "SELF_MERGE"
	NoCommitWithMessage   Kind = "NO_COMMIT_WITH_MESSAGE"
	Integrity             Kind = "INTEGRITY"
)

// Error is a failure reported verbatim to the user
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an error of the given kind with a fixed message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err wraps an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsPrecondition reports whether err is a user-facing precondition failure
// rather than an I/O or integrity failure.
func IsPrecondition(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind != Integrity
}

func AlreadyInitializedError() *Error {
	return New(AlreadyInitialized, "A Gitlet version-control system already exists in the current directory.")
}

func NotInitializedError() *Error {
	return New(NotInitialized, "Not in an initialized Gitlet directory.")
}

func FileNotFoundError() *Error {
	return New(FileNotFound, "File does not exist.")
}

func NothingToRemoveError() *Error {
	return New(NothingToRemove, "No reason to remove the file.")
}

func EmptyMessageError() *Error {
	return New(EmptyMessage, "Please enter a commit message.")
}

func NoChangesError() *Error {
	return New(NoChanges, "No changes added to the commit.")
}

// NoSuchBranchError is returned by checkout; merge and rm-branch use BranchNotFoundError
func NoSuchBranchError() *Error {
	return New(NoSuchBranch, "No such branch exists.")
}

func BranchNotFoundError() *Error {
	return New(NoSuchBranch, "A branch with that name does not exist.")
}

func AlreadyOnBranchError() *Error {
	return New(AlreadyOnBranch, "No need to checkout the current branch.")
}

func UntrackedFileConflictError() *Error {
	return New(UntrackedFileConflict, "There is an untracked file in the way; delete it, or add and commit it first.")
}

func NoSuchCommitError() *Error {
	return New(NoSuchCommit, "No commit with that id exists.")
}

func FileNotInCommitError() *Error {
	return New(FileNotInCommit, "File does not exist in that commit.")
}

func BranchExistsError() *Error {
	return New(BranchExists, "A branch with that name already exists.")
}

func InvalidBranchNameError(name string) *Error {
	return Newf(InvalidBranchName, "'%s' is not a valid branch name.", name)
}

func CannotRemoveCurrentError() *Error {
	return New(CannotRemoveCurrent, "Cannot remove the current branch.")
}

func UncommittedChangesError() *Error {
	return New(UncommittedChanges, "You have uncommitted changes.")
}

func SelfMergeError() *Error {
	return New(SelfMerge, "Cannot merge a branch with itself.")
}

func NoCommitWithMessageError() *Error {
	return New(NoCommitWithMessage, "Found no commit with that message.")
}

// IntegrityErrorf reports repository corruption: a dangling ref, a missing
// object, a hash mismatch.
func IntegrityErrorf(format string, args ...any) *Error {
	return Newf(Integrity, format, args...)
}
