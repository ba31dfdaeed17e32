package core

import (
	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/worktree"
	"go.uber.org/zap"
)

// Add stages the working copy of name. If it matches the version tracked by
// the current commit, any pending addition or removal of name is dropped
// instead.
func (r *Repository) Add(name string) error {
	name, ok := worktree.Clean(name)
	if !ok {
		return errs.FileNotFoundError()
	}

	exists, err := r.tree.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return errs.FileNotFoundError()
	}

	content, err := r.tree.Read(name)
	if err != nil {
		return err
	}

	_, current, err := r.head()
	if err != nil {
		return err
	}

	blob := models.NewBlob(name, content)
	if tracked, ok := current.BlobFor(name); ok && tracked == r.blobIDFor(name, content) {
		r.logger.Debug("working copy matches HEAD; unstaging", zap.String("file", name))
		return r.index.Unstage(name)
	}

	blobID, err := r.objects.PutBlob(blob)
	if err != nil {
		return err
	}
	r.logger.Debug("staged file", zap.String("file", name), zap.String("blob", blobID))
	return r.index.StageAddition(name, blobID)
}

// Remove unstages name if it is staged for addition. If the current commit
// tracks name, it is staged for removal and its working copy deleted.
func (r *Repository) Remove(name string) error {
	name, ok := worktree.Clean(name)
	if !ok {
		return errs.NothingToRemoveError()
	}

	_, current, err := r.head()
	if err != nil {
		return err
	}

	_, staged, err := r.index.Staged(name)
	if err != nil {
		return err
	}
	tracked := current.Tracks(name)

	switch {
	case tracked:
		if err := r.index.StageRemoval(name); err != nil {
			return err
		}
		r.logger.Debug("staged removal", zap.String("file", name))
		return r.tree.Remove(name)
	case staged:
		r.logger.Debug("unstaged file", zap.String("file", name))
		return r.index.Unstage(name)
	default:
		return errs.NothingToRemoveError()
	}
}
