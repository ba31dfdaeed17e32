package core

import (
	"container/heap"
	"time"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/models"
	"go.uber.org/zap"
)

const (
	sideCurrent uint8 = 1 << iota
	sideOther
	sideBoth = sideCurrent | sideOther
)

// commitQueue orders commits newest first, ties broken by ascending ID
type commitQueue []*models.Commit

func (q commitQueue) Len() int { return len(q) }

func (q commitQueue) Less(i, j int) bool {
	if !q[i].Timestamp.Equal(q[j].Timestamp) {
		return q[i].Timestamp.After(q[j].Timestamp)
	}
	return q[i].ID < q[j].ID
}

func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commitQueue) Push(x any) { *q = append(*q, x.(*models.Commit)) }

func (q *commitQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}

// SplitPoint returns the latest common ancestor of two commits.
//
// Both tips are walked backwards together over all parents, newest commit
// first. Every commit carries the set of tips it was reached from; the first
// commit popped that was reached from both is the split point. Commit
// timestamps strictly increase from parent to child, so by then every
// descendant of it has already been popped.
func (r *Repository) SplitPoint(currentID, otherID string) (string, error) {
	if currentID == otherID {
		return currentID, nil
	}

	flags := make(map[string]uint8)
	queued := make(map[string]bool)
	q := &commitQueue{}

	push := func(id string, side uint8) error {
		merged := flags[id] | side
		if merged == flags[id] {
			return nil
		}
		flags[id] = merged
		if queued[id] {
			return nil
		}
		c, err := r.loadCommit(id)
		if err != nil {
			return err
		}
		queued[id] = true
		heap.Push(q, c)
		return nil
	}

	if err := push(currentID, sideCurrent); err != nil {
		return "", err
	}
	if err := push(otherID, sideOther); err != nil {
		return "", err
	}

	for q.Len() > 0 {
		c := heap.Pop(q).(*models.Commit)
		queued[c.ID] = false

		side := flags[c.ID]
		if side == sideBoth {
			r.logger.Debug("found split point",
				zap.String("current", currentID),
				zap.String("other", otherID),
				zap.String("split", c.ID))
			return c.ID, nil
		}
		for _, parent := range c.Parents {
			if err := push(parent, side); err != nil {
				return "", err
			}
		}
	}

	// Every history shares the root commit, so this means the two commits
	// come from repositories created with different hashes or roots.
	return "", errs.IntegrityErrorf("commits %s and %s have no common ancestor", currentID, otherID)
}

// Log returns the first-parent history of HEAD, newest first
func (r *Repository) Log() ([]*models.Commit, error) {
	_, commit, err := r.head()
	if err != nil {
		return nil, err
	}

	var out []*models.Commit
	for {
		out = append(out, commit)
		parent := commit.Parent(0)
		if parent == "" {
			return out, nil
		}
		if commit, err = r.loadCommit(parent); err != nil {
			return nil, err
		}
	}
}

// GlobalLog returns every commit reachable from any branch. Branch tips are
// visited in name order and history breadth-first over all parents; each
// commit appears once, in discovery order.
func (r *Repository) GlobalLog() ([]*models.Commit, error) {
	branches, err := r.refs.ListBranches()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var queue []string
	for _, b := range branches {
		if !seen[b.CommitID] {
			seen[b.CommitID] = true
			queue = append(queue, b.CommitID)
		}
	}

	var out []*models.Commit
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		commit, err := r.loadCommit(id)
		if err != nil {
			return nil, err
		}
		out = append(out, commit)

		for _, parent := range commit.Parents {
			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}
	}
	return out, nil
}

// Find returns the IDs of all commits with exactly the given message,
// oldest first.
func (r *Repository) Find(message string) ([]string, error) {
	ids, err := r.catalog.FindByMessage(message)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errs.NoCommitWithMessageError()
	}
	return ids, nil
}

// commitTime returns the timestamp for a new commit: the clock reading,
// moved forward if needed so it is strictly after every parent.
func (r *Repository) commitTime(parents ...*models.Commit) time.Time {
	ts := r.now().UTC()
	for _, p := range parents {
		if !ts.After(p.Timestamp) {
			ts = p.Timestamp.Add(time.Nanosecond)
		}
	}
	return ts
}
