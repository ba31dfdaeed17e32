package core

import (
	"strings"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/models"
	"go.uber.org/zap"
)

// Commit creates a commit from the staged changes on top of HEAD, advances
// the current branch to it and clears the index.
func (r *Repository) Commit(message string) (*models.Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errs.EmptyMessageError()
	}

	staging, err := r.index.Snapshot()
	if err != nil {
		return nil, err
	}
	if staging.IsClean() {
		return nil, errs.NoChangesError()
	}

	branch, current, err := r.head()
	if err != nil {
		return nil, err
	}

	commit := models.NewCommit(message, []string{current.ID}, staging.Apply(current.Tracked), r.commitTime(current))
	if err := r.finalizeCommit(branch, commit); err != nil {
		return nil, err
	}

	r.logger.Info("created commit",
		zap.String("commit", commit.ID),
		zap.String("branch", branch),
		zap.Int("added", len(staging.Added)),
		zap.Int("removed", len(staging.Removed)))
	return commit, nil
}

// finalizeCommit writes the commit, advances branch to it and clears the index
func (r *Repository) finalizeCommit(branch string, commit *models.Commit) error {
	if err := r.writeCommit(commit); err != nil {
		return err
	}
	if err := r.refs.SetBranch(branch, commit.ID); err != nil {
		return err
	}
	return r.index.Clear()
}
