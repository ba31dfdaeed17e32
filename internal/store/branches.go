package store

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/logging"
	"github.com/kilupskalvis/gitlet/internal/models"
	"go.uber.org/zap"
)

const headRefPrefix = "ref: "

// RefStore manages HEAD and the branch files under refs/heads.
// Its filesystem is rooted at the .gitlet directory.
type RefStore struct {
	fs     billy.Filesystem
	logger *logging.Logger
}

// NewRefStore creates a ref store over the control directory
func NewRefStore(fs billy.Filesystem, logger *logging.Logger) *RefStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &RefStore{fs: fs, logger: logger.Component("refs")}
}

// ValidBranchName reports whether name can be stored as a branch file
func ValidBranchName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return false
	}
	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// CurrentBranch returns the branch HEAD points at
func (s *RefStore) CurrentBranch() (string, error) {
	data, err := util.ReadFile(s.fs, config.HeadFile)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, headRefPrefix) {
		return "", fmt.Errorf("HEAD is not a symbolic ref: %q", line)
	}
	ref := strings.TrimPrefix(line, headRefPrefix)
	name, ok := strings.CutPrefix(ref, branchDir()+"/")
	if !ok || !ValidBranchName(name) {
		return "", fmt.Errorf("HEAD points outside %s: %q", branchDir(), ref)
	}
	return name, nil
}

// SetCurrentBranch points HEAD at the named branch
func (s *RefStore) SetCurrentBranch(name string) error {
	if !ValidBranchName(name) {
		return fmt.Errorf("invalid branch name %q", name)
	}
	content := headRefPrefix + branchPath(name) + "\n"
	if err := s.writeAtomic(config.HeadFile, []byte(content)); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	s.logger.Debug("moved HEAD", zap.String("branch", name))
	return nil
}

// Head resolves HEAD to its branch and commit
func (s *RefStore) Head() (*models.HeadState, error) {
	name, err := s.CurrentBranch()
	if err != nil {
		return nil, err
	}
	branch, err := s.GetBranch(name)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("HEAD points at missing branch %q", name)
	}
	return &models.HeadState{BranchName: name, CommitID: branch.CommitID}, nil
}

// GetBranch retrieves a branch by name. Returns (nil, nil) if not found.
func (s *RefStore) GetBranch(name string) (*models.Branch, error) {
	if !ValidBranchName(name) {
		return nil, nil
	}

	data, err := util.ReadFile(s.fs, branchPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read branch %s: %w", name, err)
	}

	return &models.Branch{Name: name, CommitID: strings.TrimSpace(string(data))}, nil
}

// SetBranch creates or moves a branch to commitID
func (s *RefStore) SetBranch(name, commitID string) error {
	if !ValidBranchName(name) {
		return fmt.Errorf("invalid branch name %q", name)
	}
	if err := s.writeAtomic(branchPath(name), []byte(commitID+"\n")); err != nil {
		return fmt.Errorf("write branch %s: %w", name, err)
	}
	s.logger.Debug("updated branch", zap.String("branch", name), zap.String("commit", commitID))
	return nil
}

// DeleteBranch removes a branch by name
func (s *RefStore) DeleteBranch(name string) error {
	if !ValidBranchName(name) {
		return fmt.Errorf("branch not found: %s", name)
	}
	if err := s.fs.Remove(branchPath(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("branch not found: %s", name)
		}
		return fmt.Errorf("delete branch %s: %w", name, err)
	}
	s.logger.Debug("deleted branch", zap.String("branch", name))
	return nil
}

// BranchExists checks if a branch with the given name exists
func (s *RefStore) BranchExists(name string) (bool, error) {
	branch, err := s.GetBranch(name)
	if err != nil {
		return false, err
	}
	return branch != nil, nil
}

// ListBranches returns all branches sorted by name
func (s *RefStore) ListBranches() ([]*models.Branch, error) {
	entries, err := s.fs.ReadDir(branchDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var branches []*models.Branch
	for _, entry := range entries {
		if entry.IsDir() || !ValidBranchName(entry.Name()) {
			continue
		}
		branch, err := s.GetBranch(entry.Name())
		if err != nil {
			return nil, err
		}
		if branch != nil {
			branches = append(branches, branch)
		}
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})

	return branches, nil
}

// writeAtomic replaces name with data through a temp file in the same directory
func (s *RefStore) writeAtomic(name string, data []byte) error {
	dir := path.Dir(name)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := util.TempFile(s.fs, dir, ".ref-")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpPath)
		return err
	}

	if err := s.fs.Rename(tmpPath, name); err != nil {
		s.fs.Remove(tmpPath)
		return err
	}
	return nil
}

func branchDir() string {
	return path.Join(config.RefsDir, config.HeadsDir)
}

func branchPath(name string) string {
	return path.Join(branchDir(), name)
}
