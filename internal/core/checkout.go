package core

import (
	"sort"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/worktree"
	"go.uber.org/zap"
)

// CheckoutBranch switches to branch: the working tree is rewritten to the
// branch tip, files tracked only by the current commit are deleted, the
// index is cleared and HEAD moves to branch.
func (r *Repository) CheckoutBranch(name string) error {
	target, err := r.branchCommit(name)
	if err != nil {
		return err
	}
	if target == nil {
		return errs.NoSuchBranchError()
	}

	currentBranch, current, err := r.head()
	if err != nil {
		return err
	}
	if name == currentBranch {
		return errs.AlreadyOnBranchError()
	}

	if err := r.restoreSnapshot(current.Tracked, target.Tracked); err != nil {
		return err
	}
	if err := r.index.Clear(); err != nil {
		return err
	}
	if err := r.refs.SetCurrentBranch(name); err != nil {
		return err
	}

	r.logger.Info("switched branch", zap.String("from", currentBranch), zap.String("to", name), zap.String("commit", target.ID))
	return nil
}

// CheckoutFile overwrites the working copy of name with its version in the
// given commit. An empty ref means HEAD. The index is left untouched.
func (r *Repository) CheckoutFile(ref, name string) error {
	var commit *models.Commit
	var err error
	if ref == "" {
		_, commit, err = r.head()
	} else {
		commit, err = r.ResolveCommit(ref)
	}
	if err != nil {
		return err
	}

	name, ok := worktree.Clean(name)
	if !ok {
		return errs.FileNotInCommitError()
	}
	blobID, ok := commit.BlobFor(name)
	if !ok {
		return errs.FileNotInCommitError()
	}

	blob, err := r.loadBlob(blobID)
	if err != nil {
		return err
	}
	if err := r.tree.Write(name, blob.Content); err != nil {
		return err
	}

	r.logger.Debug("restored file", zap.String("file", name), zap.String("commit", commit.ID))
	return nil
}

// untracked returns the working files the current commit does not track,
// including files staged for addition.
func (r *Repository) untracked(current map[string]string) ([]string, error) {
	files, err := r.tree.List()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, name := range files {
		if _, ok := current[name]; !ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// pathsCollide reports whether a and b cannot both be files in the working
// tree: they are equal, or one is a directory prefix of the other.
func pathsCollide(a, b string) bool {
	return a == b || strings.HasPrefix(b, a+"/") || strings.HasPrefix(a, b+"/")
}

// checkUntracked fails with UntrackedFileConflict if moving the working tree
// from current to target would overwrite or delete an untracked file, or
// needs its path for a directory or file of target.
func (r *Repository) checkUntracked(current, target map[string]string) error {
	untracked, err := r.untracked(current)
	if err != nil {
		return err
	}

	for _, name := range untracked {
		for targetName := range target {
			if pathsCollide(name, targetName) {
				r.logger.Debug("untracked file in the way", zap.String("file", name), zap.String("target", targetName))
				return errs.UntrackedFileConflictError()
			}
		}
	}
	return nil
}

// restoreSnapshot moves the working tree from the current snapshot to the
// target snapshot after checking for untracked files in the way.
func (r *Repository) restoreSnapshot(current, target map[string]string) error {
	if err := r.checkUntracked(current, target); err != nil {
		return err
	}
	return r.applySnapshot(current, target)
}

// applySnapshot deletes the files of current that target does not track and
// then writes every file of target. All blobs are loaded before the first
// change, and deleting first frees paths that switch between file and
// directory.
func (r *Repository) applySnapshot(current, target map[string]string) error {
	names := make([]string, 0, len(target))
	for name := range target {
		names = append(names, name)
	}
	sort.Strings(names)

	contents := make(map[string][]byte, len(target))
	for _, name := range names {
		blob, err := r.loadBlob(target[name])
		if err != nil {
			return err
		}
		contents[name] = blob.Content
	}

	for name := range current {
		if _, keep := target[name]; keep {
			continue
		}
		if err := r.tree.Remove(name); err != nil {
			return err
		}
	}
	for _, name := range names {
		if err := r.tree.Write(name, contents[name]); err != nil {
			return err
		}
	}
	return nil
}
