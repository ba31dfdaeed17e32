package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/logging"
	"github.com/kilupskalvis/gitlet/internal/models"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned when no object has the requested ID
var ErrObjectNotFound = errors.New("object not found")

// zstdMagic prefixes every zstd frame
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ObjectStore is a content-addressed store for blobs and commits.
// Objects live in a two-level directory structure using the first two
// characters of the ID as a prefix directory. Writes are write-if-absent
// through a temp file and rename, so an object is either fully present or
// missing.
type ObjectStore struct {
	fs       billy.Filesystem
	hasher   Hasher
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	cache    *lru.Cache[string, []byte]
	logger   *logging.Logger
}

// ObjectStoreOptions configures an ObjectStore
type ObjectStoreOptions struct {
	Hasher      Hasher
	Compression string
	CacheSize   int
	Logger      *logging.Logger
}

// NewObjectStore creates an object store rooted at fs
func NewObjectStore(fs billy.Filesystem, opts ObjectStoreOptions) (*ObjectStore, error) {
	if opts.Hasher == nil {
		return nil, fmt.Errorf("object store requires a hasher")
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = config.DefaultObjectCache
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	cache, err := lru.New[string, []byte](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create object cache: %w", err)
	}

	// Decoding is always available so objects written under either
	// compression setting stay readable.
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	s := &ObjectStore{
		fs:       fs,
		hasher:   opts.Hasher,
		compress: opts.Compression != config.CompressionNone,
		decoder:  decoder,
		cache:    cache,
		logger:   opts.Logger.Component("objects"),
	}

	if s.compress {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			decoder.Close()
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		s.encoder = encoder
	}

	return s, nil
}

// Close releases the codec resources
func (s *ObjectStore) Close() error {
	if s.encoder != nil {
		if err := s.encoder.Close(); err != nil {
			return err
		}
	}
	s.decoder.Close()
	return nil
}

// Hasher returns the hasher used to derive object IDs
func (s *ObjectStore) Hasher() Hasher {
	return s.hasher
}

// Put stores encoded object bytes and returns their ID.
// Idempotent: if the object exists, this is a no-op.
func (s *ObjectStore) Put(data []byte) (string, error) {
	id := s.hasher.Sum(data)
	p := s.objectPath(id)

	if _, err := s.fs.Stat(p); err == nil {
		return id, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat object %s: %w", id, err)
	}

	stored := data
	if s.compress {
		stored = s.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	}

	dir := path.Dir(p)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := util.TempFile(s.fs, dir, ".obj-")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(stored); err != nil {
		tmp.Close()
		s.fs.Remove(tmpPath)
		return "", fmt.Errorf("write object data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, p); err != nil {
		s.fs.Remove(tmpPath)
		return "", fmt.Errorf("rename object: %w", err)
	}

	s.cache.Add(id, data)
	s.logger.Debug("stored object", zap.String("id", id), zap.Int("size", len(data)), zap.Int("stored", len(stored)))
	return id, nil
}

// Get returns the encoded bytes of an object, verifying them against id.
// Returns ErrObjectNotFound if the object does not exist.
func (s *ObjectStore) Get(id string) ([]byte, error) {
	if !validID(s.hasher, id) {
		return nil, ErrObjectNotFound
	}
	if data, ok := s.cache.Get(id); ok {
		return append([]byte(nil), data...), nil
	}

	f, err := s.fs.Open(s.objectPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open object %s: %w", id, err)
	}
	raw, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", id, err)
	}

	data := raw
	if bytes.HasPrefix(raw, zstdMagic) {
		data, err = s.decoder.DecodeAll(raw, nil)
		if err != nil {
			return nil, errs.IntegrityErrorf("object %s: decompress: %v", id, err)
		}
	}

	if got := s.hasher.Sum(data); got != id {
		return nil, errs.IntegrityErrorf("object %s: content hashes to %s", id, got)
	}

	s.cache.Add(id, data)
	return append([]byte(nil), data...), nil
}

// Has checks whether an object exists
func (s *ObjectStore) Has(id string) (bool, error) {
	if !validID(s.hasher, id) {
		return false, nil
	}
	if s.cache.Contains(id) {
		return true, nil
	}
	_, err := s.fs.Stat(s.objectPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat object %s: %w", id, err)
	}
	return true, nil
}

// List returns all object IDs in sorted order
func (s *ObjectStore) List() ([]string, error) {
	prefixes, err := s.fs.ReadDir("")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list objects: %w", err)
	}

	var ids []string
	for _, prefix := range prefixes {
		if !prefix.IsDir() || len(prefix.Name()) != 2 {
			continue
		}
		entries, err := s.fs.ReadDir(prefix.Name())
		if err != nil {
			return nil, fmt.Errorf("list objects in %s: %w", prefix.Name(), err)
		}
		for _, entry := range entries {
			id := prefix.Name() + entry.Name()
			if entry.IsDir() || !validID(s.hasher, id) {
				continue
			}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// PutBlob stores a blob and returns its ID
func (s *ObjectStore) PutBlob(b *models.Blob) (string, error) {
	return s.Put(EncodeBlob(b))
}

// GetBlob loads a blob by ID
func (s *ObjectStore) GetBlob(id string) (*models.Blob, error) {
	data, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	b, err := DecodeBlob(data)
	if err != nil {
		return nil, errs.IntegrityErrorf("object %s: %v", id, err)
	}
	return b, nil
}

// PutCommit stores a commit and sets its ID
func (s *ObjectStore) PutCommit(c *models.Commit) (string, error) {
	data, err := EncodeCommit(c)
	if err != nil {
		return "", err
	}
	id, err := s.Put(data)
	if err != nil {
		return "", err
	}
	c.ID = id
	return id, nil
}

// GetCommit loads a commit by ID
func (s *ObjectStore) GetCommit(id string) (*models.Commit, error) {
	data, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	c, err := DecodeCommit(data)
	if err != nil {
		return nil, errs.IntegrityErrorf("object %s: %v", id, err)
	}
	c.ID = id
	return c, nil
}

// objectPath returns the path for an object relative to the store root
func (s *ObjectStore) objectPath(id string) string {
	if len(id) < 2 {
		return id
	}
	return path.Join(id[:2], id[2:])
}
