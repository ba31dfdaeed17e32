package models

import (
	"sort"
	"time"
)

// RootMessage is the message of the root commit shared by every repository
const RootMessage = "initial commit"

// DateFormat is the display format for commit timestamps
const DateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// Commit is an immutable snapshot of the tracked files.
//
// Tracked is the complete filename -> blob ID mapping, not a diff against
// the parent. Commits loaded from the store are fresh values; callers must
// not mutate them and use CopyTracked to build a successor.
type Commit struct {
	ID        string
	Timestamp time.Time
	Message   string
	Parents   []string
	Tracked   map[string]string
}

// NewRootCommit returns the deterministic root commit
func NewRootCommit() *Commit {
	return &Commit{
		Timestamp: time.Unix(0, 0).UTC(),
		Message:   RootMessage,
		Parents:   []string{},
		Tracked:   map[string]string{},
	}
}

// NewCommit creates an unsaved commit. The ID is assigned when the commit
// is written to the object store.
func NewCommit(message string, parents []string, tracked map[string]string, timestamp time.Time) *Commit {
	if parents == nil {
		parents = []string{}
	}
	if tracked == nil {
		tracked = map[string]string{}
	}
	return &Commit{
		Timestamp: timestamp.UTC(),
		Message:   message,
		Parents:   append([]string(nil), parents...),
		Tracked:   tracked,
	}
}

// Parent returns the ID of the i-th parent, or "" when the commit has fewer
// than i+1 parents.
func (c *Commit) Parent(i int) string {
	if i < 0 || i >= len(c.Parents) {
		return ""
	}
	return c.Parents[i]
}

// IsRoot returns true for a commit without parents
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// IsMergeCommit returns true if this commit has two parents
func (c *Commit) IsMergeCommit() bool {
	return len(c.Parents) > 1
}

// ShortID returns a shortened commit ID
func (c *Commit) ShortID() string {
	return ShortID(c.ID)
}

// BlobFor returns the blob ID tracked for name
func (c *Commit) BlobFor(name string) (string, bool) {
	id, ok := c.Tracked[name]
	return id, ok
}

// Tracks reports whether name is part of the snapshot
func (c *Commit) Tracks(name string) bool {
	_, ok := c.Tracked[name]
	return ok
}

// CopyTracked returns a copy of the tracked mapping
func (c *Commit) CopyTracked() map[string]string {
	out := make(map[string]string, len(c.Tracked))
	for name, id := range c.Tracked {
		out[name] = id
	}
	return out
}

// TrackedNames returns the tracked filenames in sorted order
func (c *Commit) TrackedNames() []string {
	names := make([]string, 0, len(c.Tracked))
	for name := range c.Tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormattedDate renders the timestamp in local time
func (c *Commit) FormattedDate() string {
	return c.Timestamp.Local().Format(DateFormat)
}
