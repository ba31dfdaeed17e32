package core

import (
	"github.com/kilupskalvis/gitlet/internal/models"
	"go.uber.org/zap"
)

// Reset moves the current branch to the given commit and rewrites the
// working tree to match it, like checking out a branch that points there.
// The index is cleared.
func (r *Repository) Reset(ref string) (*models.Commit, error) {
	target, err := r.ResolveCommit(ref)
	if err != nil {
		return nil, err
	}

	branch, current, err := r.head()
	if err != nil {
		return nil, err
	}

	if err := r.restoreSnapshot(current.Tracked, target.Tracked); err != nil {
		return nil, err
	}
	if err := r.index.Clear(); err != nil {
		return nil, err
	}
	if err := r.refs.SetBranch(branch, target.ID); err != nil {
		return nil, err
	}

	r.logger.Info("reset branch", zap.String("branch", branch), zap.String("from", current.ID), zap.String("to", target.ID))
	return target, nil
}
