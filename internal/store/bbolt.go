// Package store persists gitlet state: the content-addressed object store,
// branch refs, the bbolt staging index and the SQLite commit catalog.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names used by the staging index.
var (
	bucketAdded   = []byte("added")
	bucketRemoved = []byte("removed")
	bucketMeta    = []byte("meta")
)

var keyCatalogPending = []byte("catalog_pending")

// Index is the bbolt-backed staging area.
// bbolt holds an exclusive lock on the file while it is open, so a second
// process opening the same repository fails after the open timeout.
type Index struct {
	db *bolt.DB
}

// OpenIndex opens or creates the staging index at the given path
func OpenIndex(dbPath string) (*Index, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close closes the index
func (idx *Index) Close() error {
	if idx.db == nil {
		return nil
	}
	return idx.db.Close()
}

// initialize creates the staging buckets
func (idx *Index) initialize() error {
	return idx.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketAdded, bucketRemoved, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// SetCatalogPending marks that a commit object may exist without its
// catalog row. The mark is set before a commit is stored and cleared once it
// is recorded, so a mark found on open means the catalog must be rebuilt.
func (idx *Index) SetCatalogPending(pending bool) error {
	return idx.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if pending {
			return b.Put(keyCatalogPending, []byte{1})
		}
		return b.Delete(keyCatalogPending)
	})
}

// CatalogPending reports whether the catalog pending mark is set
func (idx *Index) CatalogPending() (bool, error) {
	var pending bool
	err := idx.db.View(func(tx *bolt.Tx) error {
		pending = tx.Bucket(bucketMeta).Get(keyCatalogPending) != nil
		return nil
	})
	return pending, err
}
