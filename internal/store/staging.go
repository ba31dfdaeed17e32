package store

import (
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// Staging is a point-in-time copy of the index
type Staging struct {
	Added   map[string]string   // filename -> blob ID
	Removed map[string]struct{} // filenames staged for removal
}

// IsClean reports whether nothing is staged
func (s *Staging) IsClean() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0
}

// AddedNames returns the files staged for addition, sorted
func (s *Staging) AddedNames() []string {
	names := make([]string, 0, len(s.Added))
	for name := range s.Added {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemovedNames returns the files staged for removal, sorted
func (s *Staging) RemovedNames() []string {
	names := make([]string, 0, len(s.Removed))
	for name := range s.Removed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns tracked with the staged additions and removals applied
func (s *Staging) Apply(tracked map[string]string) map[string]string {
	out := make(map[string]string, len(tracked)+len(s.Added))
	for name, id := range tracked {
		out[name] = id
	}
	for name, id := range s.Added {
		out[name] = id
	}
	for name := range s.Removed {
		delete(out, name)
	}
	return out
}

// StageAddition records name -> blobID as a pending addition and drops any
// pending removal of name.
func (idx *Index) StageAddition(name, blobID string) error {
	return idx.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketRemoved).Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to clear removal of %s: %w", name, err)
		}
		if err := tx.Bucket(bucketAdded).Put([]byte(name), []byte(blobID)); err != nil {
			return fmt.Errorf("failed to stage %s: %w", name, err)
		}
		return nil
	})
}

// StageRemoval records name as a pending removal and drops any pending
// addition of name.
func (idx *Index) StageRemoval(name string) error {
	return idx.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketAdded).Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to clear addition of %s: %w", name, err)
		}
		if err := tx.Bucket(bucketRemoved).Put([]byte(name), []byte{}); err != nil {
			return fmt.Errorf("failed to stage removal of %s: %w", name, err)
		}
		return nil
	})
}

// Unstage drops any pending addition or removal of name
func (idx *Index) Unstage(name string) error {
	return idx.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketAdded, bucketRemoved} {
			if err := tx.Bucket(bucket).Delete([]byte(name)); err != nil {
				return fmt.Errorf("failed to unstage %s: %w", name, err)
			}
		}
		return nil
	})
}

// Staged returns the blob ID staged for name, if any
func (idx *Index) Staged(name string) (string, bool, error) {
	var blobID string
	var ok bool

	err := idx.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketAdded).Get([]byte(name)); v != nil {
			blobID, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return blobID, ok, nil
}

// Snapshot reads both buckets in a single transaction
func (idx *Index) Snapshot() (*Staging, error) {
	staging := &Staging{
		Added:   make(map[string]string),
		Removed: make(map[string]struct{}),
	}

	err := idx.db.View(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketAdded).ForEach(func(k, v []byte) error {
			staging.Added[string(k)] = string(v)
			return nil
		}); err != nil {
			return err
		}
		return tx.Bucket(bucketRemoved).ForEach(func(k, _ []byte) error {
			staging.Removed[string(k)] = struct{}{}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return staging, nil
}

// IsClean reports whether nothing is staged
func (idx *Index) IsClean() (bool, error) {
	clean := true
	err := idx.db.View(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketAdded, bucketRemoved} {
			if k, _ := tx.Bucket(bucket).Cursor().First(); k != nil {
				clean = false
			}
		}
		return nil
	})
	return clean, err
}

// Clear empties the index in one transaction
func (idx *Index) Clear() error {
	return idx.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketAdded, bucketRemoved} {
			if err := tx.DeleteBucket(bucket); err != nil && err != berrors.ErrBucketNotFound {
				return fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return fmt.Errorf("failed to recreate bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
}
