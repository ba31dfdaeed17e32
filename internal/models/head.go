package models

// HeadState represents the current HEAD position
type HeadState struct {
	BranchName string // Branch HEAD points at
	CommitID   string // Commit the branch points at
}
