// Package core implements the gitlet repository operations on top of the
// object store, refs, staging index and working tree.
package core

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/logging"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/store"
	"github.com/kilupskalvis/gitlet/internal/worktree"
	"go.uber.org/zap"
)

// Options tunes how a repository is opened
type Options struct {
	Logger *logging.Logger
	// Now returns the commit timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Repository is an opened gitlet repository
type Repository struct {
	cfg     *config.Config
	objects *store.ObjectStore
	refs    *store.RefStore
	index   *store.Index
	catalog *store.Catalog
	tree    *worktree.Tree
	logger  *logging.Logger
	now     func() time.Time
}

// Init creates a repository described by cfg: the .gitlet layout, the root
// commit, the default branch pointing at it and HEAD pointing at the branch.
func Init(cfg *config.Config, opts Options) (*Repository, error) {
	if err := config.Initialize(cfg); err != nil {
		return nil, err
	}

	repo, err := open(cfg, opts)
	if err != nil {
		os.RemoveAll(cfg.GitletPath())
		return nil, err
	}

	if err := repo.writeRoot(); err != nil {
		repo.Close()
		os.RemoveAll(cfg.GitletPath())
		return nil, err
	}

	return repo, nil
}

// Open opens the repository rooted at root
func Open(root string, opts Options) (*Repository, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	repo, err := open(cfg, opts)
	if err != nil {
		return nil, err
	}

	if err := repo.healCatalog(); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

// healCatalog rebuilds the catalog when it is empty or when a commit was
// interrupted between storing its object and recording it.
func (r *Repository) healCatalog() error {
	pending, err := r.index.CatalogPending()
	if err != nil {
		return err
	}
	n, err := r.catalog.Count()
	if err != nil {
		return err
	}
	if n > 0 && !pending {
		return nil
	}

	if err := r.RebuildCatalog(); err != nil {
		return err
	}
	return r.index.SetCatalogPending(false)
}

func open(cfg *config.Config, opts Options) (*Repository, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	hasher, err := store.NewHasher(cfg.Core.Hash)
	if err != nil {
		return nil, err
	}

	controlFS := osfs.New(cfg.GitletPath())
	objectsFS, err := controlFS.Chroot(config.ObjectsDir)
	if err != nil {
		return nil, fmt.Errorf("open object directory: %w", err)
	}

	objects, err := store.NewObjectStore(objectsFS, store.ObjectStoreOptions{
		Hasher:      hasher,
		Compression: cfg.Core.Compression,
		CacheSize:   cfg.Cache.Objects,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	index, err := store.OpenIndex(cfg.IndexPath())
	if err != nil {
		objects.Close()
		return nil, err
	}

	catalog, err := store.OpenCatalog(cfg.CatalogPath())
	if err != nil {
		index.Close()
		objects.Close()
		return nil, err
	}

	repo := &Repository{
		cfg:     cfg,
		objects: objects,
		refs:    store.NewRefStore(controlFS, opts.Logger),
		index:   index,
		catalog: catalog,
		tree:    worktree.New(osfs.New(cfg.Root())),
		logger:  opts.Logger.Component("repository"),
		now:     opts.Now,
	}
	return repo, nil
}

// Close releases the index lock and database handles
func (r *Repository) Close() error {
	return errors.Join(r.catalog.Close(), r.index.Close(), r.objects.Close())
}

// Config returns the repository configuration
func (r *Repository) Config() *config.Config {
	return r.cfg
}

// writeRoot stores the root commit and points the default branch and HEAD at it
func (r *Repository) writeRoot() error {
	root := models.NewRootCommit()
	if err := r.writeCommit(root); err != nil {
		return err
	}
	if err := r.refs.SetBranch(r.cfg.Core.DefaultBranch, root.ID); err != nil {
		return err
	}
	if err := r.refs.SetCurrentBranch(r.cfg.Core.DefaultBranch); err != nil {
		return err
	}
	r.logger.Info("initialized repository",
		zap.String("root", r.cfg.Root()),
		zap.String("commit", root.ID),
		zap.String("hash", r.objects.Hasher().Name()))
	return nil
}

// writeCommit persists a commit object, assigns its ID and records it in
// the catalog. The catalog pending mark covers the gap between the two.
func (r *Repository) writeCommit(c *models.Commit) error {
	if err := r.index.SetCatalogPending(true); err != nil {
		return err
	}
	if _, err := r.objects.PutCommit(c); err != nil {
		return fmt.Errorf("store commit: %w", err)
	}
	if err := r.catalog.Record(c); err != nil {
		return err
	}
	if err := r.index.SetCatalogPending(false); err != nil {
		return err
	}
	r.logger.Debug("wrote commit", zap.String("commit", c.ID), zap.Strings("parents", c.Parents))
	return nil
}

// head resolves HEAD to its branch and commit. A HEAD that does not lead to
// a stored commit is corruption.
func (r *Repository) head() (string, *models.Commit, error) {
	state, err := r.refs.Head()
	if err != nil {
		return "", nil, errs.IntegrityErrorf("resolve HEAD: %v", err)
	}
	commit, err := r.loadCommit(state.CommitID)
	if err != nil {
		return "", nil, err
	}
	return state.BranchName, commit, nil
}

// loadCommit loads a commit referenced by a ref or parent link
func (r *Repository) loadCommit(id string) (*models.Commit, error) {
	commit, err := r.objects.GetCommit(id)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil, errs.IntegrityErrorf("commit %s is referenced but missing", id)
	}
	return commit, err
}

// loadBlob loads a blob referenced by a commit or the index
func (r *Repository) loadBlob(id string) (*models.Blob, error) {
	blob, err := r.objects.GetBlob(id)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil, errs.IntegrityErrorf("blob %s is referenced but missing", id)
	}
	return blob, err
}

// blobIDFor computes the ID the working copy of name would be stored under
func (r *Repository) blobIDFor(name string, content []byte) string {
	return r.objects.Hasher().Sum(store.EncodeBlob(models.NewBlob(name, content)))
}

// RebuildCatalog records every commit object in the catalog. The catalog is
// derived from the object store, so this is safe to run at any time.
func (r *Repository) RebuildCatalog() error {
	ids, err := r.objects.List()
	if err != nil {
		return err
	}

	recorded := 0
	for _, id := range ids {
		data, err := r.objects.Get(id)
		if err != nil {
			return err
		}
		if typ, err := store.TypeOf(data); err != nil || typ != store.TypeCommit {
			continue
		}
		commit, err := r.objects.GetCommit(id)
		if err != nil {
			return err
		}
		if err := r.catalog.Record(commit); err != nil {
			return err
		}
		recorded++
	}

	r.logger.Info("rebuilt commit catalog", zap.Int("commits", recorded), zap.Int("objects", len(ids)))
	return nil
}
