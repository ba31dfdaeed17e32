package models

// MergeConflictType identifies the type of merge conflict
type MergeConflictType string

const (
	ConflictModifyModify MergeConflictType = "modify-modify" // Both modified differently
	ConflictDeleteModify MergeConflictType = "delete-modify" // We deleted, they modified
	ConflictModifyDelete MergeConflictType = "modify-delete" // We modified, they deleted
	ConflictAddAdd       MergeConflictType = "add-add"       // Both added with different content
)

// MergeConflict records a file whose content was synthesized with markers
type MergeConflict struct {
	Filename string
	Type     MergeConflictType
	Base     string // blob ID at the split point ("" if absent)
	Ours     string // blob ID on the current branch ("" if absent)
	Theirs   string // blob ID on the given branch ("" if absent)
}

// MergeResult contains the outcome of a merge operation
type MergeResult struct {
	SplitPoint  string           // Lowest common ancestor
	FastForward bool             // Current branch advanced to the given branch
	UpToDate    bool             // Given branch is an ancestor of the current branch
	MergeCommit *Commit          // The merge commit (nil for fast-forward / up to date)
	Conflicts   []*MergeConflict // Conflicted files, sorted by name
}

// HasConflicts reports whether any file was merged with conflict markers
func (r *MergeResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}
