package core

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/models"
	"go.uber.org/zap"
)

// Conflict markers written around the two sides of a conflicted file
const (
	markerOurs   = "<<<<<<< HEAD\n"
	markerSep    = "=======\n"
	markerTheirs = ">>>>>>>\n"
)

// Merge merges the given branch into the current branch.
//
// If the given branch is an ancestor of HEAD nothing happens. If HEAD is an
// ancestor of the given branch, the current branch is fast-forwarded to it.
// Otherwise every file is merged three ways against the split point and a
// merge commit with parents [HEAD, branch] is created, even when some files
// end up with conflict markers.
func (r *Repository) Merge(branch string) (*models.MergeResult, error) {
	clean, err := r.index.IsClean()
	if err != nil {
		return nil, err
	}
	if !clean {
		return nil, errs.UncommittedChangesError()
	}

	other, err := r.branchCommit(branch)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, errs.BranchNotFoundError()
	}

	currentBranch, current, err := r.head()
	if err != nil {
		return nil, err
	}
	if branch == currentBranch {
		return nil, errs.SelfMergeError()
	}

	splitID, err := r.SplitPoint(current.ID, other.ID)
	if err != nil {
		return nil, err
	}
	result := &models.MergeResult{SplitPoint: splitID}

	if splitID == other.ID {
		result.UpToDate = true
		return result, nil
	}

	if splitID == current.ID {
		return r.performFastForward(currentBranch, current, other, result)
	}

	split, err := r.loadCommit(splitID)
	if err != nil {
		return nil, err
	}
	return r.performThreeWayMerge(currentBranch, branch, split, current, other, result)
}

// performFastForward moves the current branch to other and rewrites the
// working tree. No commit is created.
func (r *Repository) performFastForward(currentBranch string, current, other *models.Commit, result *models.MergeResult) (*models.MergeResult, error) {
	if err := r.restoreSnapshot(current.Tracked, other.Tracked); err != nil {
		return nil, err
	}
	if err := r.refs.SetBranch(currentBranch, other.ID); err != nil {
		return nil, err
	}

	r.logger.Info("fast-forwarded branch", zap.String("branch", currentBranch), zap.String("from", current.ID), zap.String("to", other.ID))
	result.FastForward = true
	return result, nil
}

// performThreeWayMerge applies the merged snapshot and records a two-parent commit
func (r *Repository) performThreeWayMerge(currentBranch, otherBranch string, split, current, other *models.Commit, result *models.MergeResult) (*models.MergeResult, error) {
	merged := computeMergedState(split.Tracked, current.Tracked, other.Tracked)
	conflicts := detectConflicts(split.Tracked, current.Tracked, other.Tracked)

	// Conflict blobs are built in memory so the untracked-file check runs
	// before anything is written.
	conflictBlobs := make([]*models.Blob, 0, len(conflicts))
	for _, c := range conflicts {
		blob, err := r.conflictBlob(c)
		if err != nil {
			return nil, err
		}
		merged[c.Filename] = r.blobIDFor(blob.Filename, blob.Content)
		conflictBlobs = append(conflictBlobs, blob)
	}

	if err := r.checkUntracked(current.Tracked, merged); err != nil {
		return nil, err
	}

	for _, blob := range conflictBlobs {
		if _, err := r.objects.PutBlob(blob); err != nil {
			return nil, err
		}
	}
	if err := r.applySnapshot(current.Tracked, merged); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Merged %s into %s.", otherBranch, currentBranch)
	commit := models.NewCommit(message, []string{current.ID, other.ID}, merged, r.commitTime(current, other))
	if err := r.finalizeCommit(currentBranch, commit); err != nil {
		return nil, err
	}

	r.logger.Info("merged branch",
		zap.String("branch", otherBranch),
		zap.String("into", currentBranch),
		zap.String("split", split.ID),
		zap.String("commit", commit.ID),
		zap.Int("conflicts", len(conflicts)))

	result.MergeCommit = commit
	result.Conflicts = conflicts
	return result, nil
}

// detectConflicts returns the files changed differently on both sides since
// the split point, sorted by name. A side that deleted the file counts as a
// change.
func detectConflicts(base, ours, theirs map[string]string) []*models.MergeConflict {
	var conflicts []*models.MergeConflict

	for _, name := range unionNames(base, ours, theirs) {
		baseID, inBase := base[name]
		oursID := ours[name]
		theirsID := theirs[name]

		// No conflict if unchanged in at least one branch
		if oursID == baseID || theirsID == baseID {
			continue
		}
		// If both changed to the same value, no conflict
		if oursID == theirsID {
			continue
		}

		conflict := &models.MergeConflict{
			Filename: name,
			Base:     baseID,
			Ours:     oursID,
			Theirs:   theirsID,
		}
		switch {
		case !inBase:
			conflict.Type = models.ConflictAddAdd
		case oursID == "":
			conflict.Type = models.ConflictDeleteModify
		case theirsID == "":
			conflict.Type = models.ConflictModifyDelete
		default:
			conflict.Type = models.ConflictModifyModify
		}
		conflicts = append(conflicts, conflict)
	}

	return conflicts
}

// computeMergedState computes the merged snapshot, excluding conflicts,
// which keep the current side until they are resolved with markers.
func computeMergedState(base, ours, theirs map[string]string) map[string]string {
	merged := make(map[string]string, len(ours))
	for name, id := range ours {
		merged[name] = id
	}

	for _, name := range unionNames(base, theirs) {
		baseID := base[name]
		oursID := ours[name]
		theirsID := theirs[name]

		// If they changed and we didn't, take theirs
		if oursID == baseID && theirsID != baseID {
			if theirsID != "" {
				merged[name] = theirsID
			} else {
				delete(merged, name)
			}
		}
	}

	return merged
}

// conflictBlob builds the marker-delimited content for a conflicted file.
// A side that deleted the file contributes empty content.
func (r *Repository) conflictBlob(c *models.MergeConflict) (*models.Blob, error) {
	ours, err := r.blobContent(c.Ours)
	if err != nil {
		return nil, err
	}
	theirs, err := r.blobContent(c.Theirs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(markerOurs)
	buf.Write(ours)
	buf.WriteString(markerSep)
	buf.Write(theirs)
	buf.WriteString(markerTheirs)
	return models.NewBlob(c.Filename, buf.Bytes()), nil
}

func (r *Repository) blobContent(id string) ([]byte, error) {
	if id == "" {
		return nil, nil
	}
	blob, err := r.loadBlob(id)
	if err != nil {
		return nil, err
	}
	return blob.Content, nil
}

// unionNames returns the sorted union of the keys of the given snapshots
func unionNames(snapshots ...map[string]string) []string {
	set := make(map[string]struct{})
	for _, s := range snapshots {
		for name := range s {
			set[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
