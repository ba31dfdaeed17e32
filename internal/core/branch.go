package core

import (
	"errors"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/store"
	"go.uber.org/zap"
)

// ListBranches returns all branches and the name of the current branch
func (r *Repository) ListBranches() ([]*models.Branch, string, error) {
	branches, err := r.refs.ListBranches()
	if err != nil {
		return nil, "", err
	}

	current, err := r.refs.CurrentBranch()
	if err != nil {
		return nil, "", errs.IntegrityErrorf("resolve HEAD: %v", err)
	}

	return branches, current, nil
}

// CreateBranch creates a new branch at the current commit. It does not
// switch to it.
func (r *Repository) CreateBranch(name string) error {
	if !store.ValidBranchName(name) {
		return errs.InvalidBranchNameError(name)
	}

	exists, err := r.refs.BranchExists(name)
	if err != nil {
		return err
	}
	if exists {
		return errs.BranchExistsError()
	}

	_, current, err := r.head()
	if err != nil {
		return err
	}

	if err := r.refs.SetBranch(name, current.ID); err != nil {
		return err
	}
	r.logger.Info("created branch", zap.String("branch", name), zap.String("commit", current.ID))
	return nil
}

// DeleteBranch removes a branch. Commits it pointed at stay in the store.
func (r *Repository) DeleteBranch(name string) error {
	exists, err := r.refs.BranchExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return errs.BranchNotFoundError()
	}

	current, err := r.refs.CurrentBranch()
	if err != nil {
		return errs.IntegrityErrorf("resolve HEAD: %v", err)
	}
	if name == current {
		return errs.CannotRemoveCurrentError()
	}

	if err := r.refs.DeleteBranch(name); err != nil {
		return err
	}
	r.logger.Info("deleted branch", zap.String("branch", name))
	return nil
}

// ResolveCommit resolves a full or abbreviated commit ID.
// Abbreviations are looked up in the commit catalog and must be unique.
func (r *Repository) ResolveCommit(ref string) (*models.Commit, error) {
	if !models.IsHexID(ref) {
		return nil, errs.NoSuchCommitError()
	}

	id := ref
	if len(ref) != r.objects.Hasher().HexLen() {
		matches, err := r.catalog.ResolvePrefix(ref, 2)
		if err != nil {
			return nil, err
		}
		if len(matches) != 1 {
			return nil, errs.NoSuchCommitError()
		}
		id = matches[0]
	}

	data, err := r.objects.Get(id)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil, errs.NoSuchCommitError()
	}
	if err != nil {
		return nil, err
	}
	if typ, err := store.TypeOf(data); err != nil || typ != store.TypeCommit {
		return nil, errs.NoSuchCommitError()
	}
	return r.objects.GetCommit(id)
}

// branchCommit loads the tip of a branch. Returns (nil, nil) if the branch
// does not exist.
func (r *Repository) branchCommit(name string) (*models.Commit, error) {
	branch, err := r.refs.GetBranch(name)
	if err != nil || branch == nil {
		return nil, err
	}
	return r.loadCommit(branch.CommitID)
}
