package models

// ModificationKind classifies a change not staged for commit
type ModificationKind string

const (
	Modified ModificationKind = "modified"
	Deleted  ModificationKind = "deleted"
)

// Modification is a tracked or staged file whose working copy differs
type Modification struct {
	Filename string
	Kind     ModificationKind
}

// Status is a snapshot of the repository state shown by `status`.
// Every list is sorted.
type Status struct {
	CurrentBranch string
	Branches      []string
	Staged        []string
	Removed       []string
	Modifications []Modification
	Untracked     []string
}

// IsClean reports whether there is nothing staged, modified or untracked
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Removed) == 0 && len(s.Modifications) == 0 && len(s.Untracked) == 0
}
