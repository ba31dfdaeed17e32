package core

import (
	"github.com/kilupskalvis/gitlet/internal/models"
)

// Status reports branches, staged changes, unstaged modifications and
// untracked files.
func (r *Repository) Status() (*models.Status, error) {
	branches, currentBranch, err := r.ListBranches()
	if err != nil {
		return nil, err
	}
	_, current, err := r.head()
	if err != nil {
		return nil, err
	}
	staging, err := r.index.Snapshot()
	if err != nil {
		return nil, err
	}
	files, err := r.tree.List()
	if err != nil {
		return nil, err
	}

	status := &models.Status{
		CurrentBranch: currentBranch,
		Staged:        staging.AddedNames(),
		Removed:       staging.RemovedNames(),
	}
	for _, b := range branches {
		status.Branches = append(status.Branches, b.Name)
	}

	present := make(map[string]bool, len(files))
	for _, name := range files {
		present[name] = true
	}

	// expected is what the next commit would record for each file
	expected := staging.Apply(current.Tracked)
	for _, name := range unionNames(current.Tracked, staging.Added) {
		want, ok := expected[name]
		if !ok {
			continue // staged for removal
		}
		if !present[name] {
			status.Modifications = append(status.Modifications, models.Modification{Filename: name, Kind: models.Deleted})
			continue
		}
		content, err := r.tree.Read(name)
		if err != nil {
			return nil, err
		}
		if r.blobIDFor(name, content) != want {
			status.Modifications = append(status.Modifications, models.Modification{Filename: name, Kind: models.Modified})
		}
	}

	for _, name := range files {
		if _, ok := expected[name]; !ok {
			status.Untracked = append(status.Untracked, name)
		}
	}

	return status, nil
}
