// Package config manages gitlet configuration and the .gitlet directory structure.
// It handles loading, saving, and initializing the repository configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/pelletier/go-toml/v2"
)

const (
	GitletDir   = ".gitlet"
	ConfigFile  = "config"
	HeadFile    = "HEAD"
	ObjectsDir  = "objects"
	RefsDir     = "refs"
	HeadsDir    = "heads"
	IndexFile   = "index"
	CatalogFile = "catalog.db"
)

const (
	DefaultBranch      = "master"
	DefaultObjectCache = 512
	DefaultLogLevel    = "warn"

	HashSHA1   = "sha1"
	HashSHA256 = "sha2-256"

	CompressionZstd = "zstd"
	CompressionNone = "none"
)

const (
	dirPerms  os.FileMode = 0755
	filePerms os.FileMode = 0644
)

// CoreConfig holds settings fixed when the repository is created
type CoreConfig struct {
	DefaultBranch string `toml:"default_branch"`
	Hash          string `toml:"hash"`
	Compression   string `toml:"compression"`
}

// CacheConfig sizes in-memory caches
type CacheConfig struct {
	Objects int `toml:"objects"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level string `toml:"level"`
}

// Config represents the gitlet configuration
type Config struct {
	Core  CoreConfig  `toml:"core"`
	Cache CacheConfig `toml:"cache"`
	Log   LogConfig   `toml:"log"`
	root  string      // working tree root (parent of .gitlet)
}

// New returns a configuration with default values rooted at the given
// working tree directory.
func New(root string) *Config {
	return &Config{
		Core: CoreConfig{
			DefaultBranch: DefaultBranch,
			Hash:          HashSHA1,
			Compression:   CompressionZstd,
		},
		Cache: CacheConfig{Objects: DefaultObjectCache},
		Log:   LogConfig{Level: DefaultLogLevel},
		root:  root,
	}
}

// FindRoot finds the working tree root by walking up from the current directory
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(dir)
}

// FindRootFrom walks up from dir until it finds a directory containing .gitlet
func FindRootFrom(dir string) (string, error) {
	for {
		if info, err := os.Stat(filepath.Join(dir, GitletDir)); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.NotInitializedError()
		}
		dir = parent
	}
}

// Load loads the configuration of the repository rooted at root
func Load(root string) (*Config, error) {
	cfg := New(root)

	data, err := os.ReadFile(cfg.ConfigPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, statErr := os.Stat(cfg.GitletPath()); statErr != nil {
				return nil, errs.NotInitializedError()
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(c.ConfigPath(), data, filePerms)
}

// Validate rejects settings the store cannot honour
func (c *Config) Validate() error {
	switch c.Core.Hash {
	case HashSHA1, HashSHA256:
	default:
		return fmt.Errorf("unsupported hash %q (want %q or %q)", c.Core.Hash, HashSHA1, HashSHA256)
	}

	switch c.Core.Compression {
	case CompressionZstd, CompressionNone:
	default:
		return fmt.Errorf("unsupported compression %q (want %q or %q)", c.Core.Compression, CompressionZstd, CompressionNone)
	}

	if c.Cache.Objects <= 0 {
		return fmt.Errorf("cache.objects must be positive, got %d", c.Cache.Objects)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Core.DefaultBranch == "" {
		c.Core.DefaultBranch = DefaultBranch
	}
	if c.Core.Hash == "" {
		c.Core.Hash = HashSHA1
	}
	if c.Core.Compression == "" {
		c.Core.Compression = CompressionZstd
	}
	if c.Cache.Objects == 0 {
		c.Cache.Objects = DefaultObjectCache
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Root returns the working tree root
func (c *Config) Root() string {
	return c.root
}

// GitletPath returns the path to the .gitlet directory
func (c *Config) GitletPath() string {
	return filepath.Join(c.root, GitletDir)
}

// ConfigPath returns the path to the TOML config file
func (c *Config) ConfigPath() string {
	return filepath.Join(c.GitletPath(), ConfigFile)
}

// IndexPath returns the path to the bbolt staging area
func (c *Config) IndexPath() string {
	return filepath.Join(c.GitletPath(), IndexFile)
}

// CatalogPath returns the path to the sqlite commit catalog
func (c *Config) CatalogPath() string {
	return filepath.Join(c.GitletPath(), CatalogFile)
}

// Initialize creates a new .gitlet directory under root with the given
// configuration. The object and ref directories are created empty.
func Initialize(cfg *Config) error {
	gitletPath := cfg.GitletPath()

	// Check if already initialized
	if _, err := os.Stat(gitletPath); err == nil {
		return errs.AlreadyInitializedError()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	dirs := []string{
		gitletPath,
		filepath.Join(gitletPath, ObjectsDir),
		filepath.Join(gitletPath, RefsDir, HeadsDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			os.RemoveAll(gitletPath)
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := cfg.Save(); err != nil {
		// Cleanup on failure
		os.RemoveAll(gitletPath)
		return err
	}

	return nil
}
