// Package worktree reads and writes the user's files in the working tree.
//
// File names are slash-separated paths relative to the working tree root.
// The .gitlet control directory is never listed or touched.
package worktree

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/kilupskalvis/gitlet/internal/config"
)

// Tree is the working tree of a repository
type Tree struct {
	fs billy.Filesystem
}

// New creates a working tree over fs, which must be rooted at the
// directory containing .gitlet.
func New(fs billy.Filesystem) *Tree {
	return &Tree{fs: fs}
}

// Clean normalizes a user-supplied name. It returns false for names that
// escape the tree or point into the control directory.
func Clean(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || path.IsAbs(name) {
		return "", false
	}
	name = path.Clean(name)
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", false
	}
	first, _, _ := strings.Cut(name, "/")
	if first == config.GitletDir {
		return "", false
	}
	return name, true
}

// List returns every regular file in the tree, sorted
func (t *Tree) List() ([]string, error) {
	var names []string
	if err := t.walk("", &names); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (t *Tree) walk(dir string, names *[]string) error {
	entries, err := t.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if dir == "" && name == config.GitletDir {
			continue
		}
		full := path.Join(dir, name)

		switch {
		case entry.IsDir():
			if err := t.walk(full, names); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			*names = append(*names, full)
		}
	}
	return nil
}

// Exists reports whether name is a regular file in the tree
func (t *Tree) Exists(name string) (bool, error) {
	info, err := t.fs.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the content of name
func (t *Tree) Read(name string) ([]byte, error) {
	data, err := util.ReadFile(t.fs, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the content of name, creating parent directories.
// A directory at name is replaced only if it holds no files.
func (t *Tree) Write(name string, data []byte) error {
	if err := t.clearDir(name); err != nil {
		return err
	}
	if dir := path.Dir(name); dir != "." {
		if err := t.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir for %s: %w", name, err)
		}
	}
	if err := util.WriteFile(t.fs, name, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// clearDir removes an empty directory tree at name so a file can take its
// place. It fails if any file lives under name.
func (t *Tree) clearDir(name string) error {
	info, err := t.fs.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil
	}

	var files []string
	if err := t.walk(name, &files); err != nil {
		return err
	}
	if len(files) > 0 {
		return fmt.Errorf("write %s: directory holds %d file(s)", name, len(files))
	}
	if err := util.RemoveAll(t.fs, name); err != nil {
		return fmt.Errorf("remove directory %s: %w", name, err)
	}
	return nil
}

// Remove deletes name. Removing a missing file is not an error.
// Parent directories left empty are removed as well.
func (t *Tree) Remove(name string) error {
	if err := t.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}

	for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
		entries, err := t.fs.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			break
		}
		if err := t.fs.Remove(dir); err != nil {
			break
		}
	}
	return nil
}
