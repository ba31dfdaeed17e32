package store

import (
	"encoding/hex"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/multiformats/go-multihash"
)

// Hasher fingerprints content. Fingerprints are lowercase hex digests.
type Hasher interface {
	// Sum returns the fingerprint of data
	Sum(data []byte) string
	// Name returns the configured algorithm name
	Name() string
	// HexLen returns the length of a fingerprint in characters
	HexLen() int
}

type multihashHasher struct {
	name string
	code uint64
	size int
}

// NewHasher returns the hasher for a config hash name ("sha1" or "sha2-256")
func NewHasher(name string) (Hasher, error) {
	switch name {
	case config.HashSHA1:
		return &multihashHasher{name: name, code: multihash.SHA1, size: 20}, nil
	case config.HashSHA256:
		return &multihashHasher{name: name, code: multihash.SHA2_256, size: 32}, nil
	default:
		return nil, fmt.Errorf("unsupported hash %q", name)
	}
}

func (h *multihashHasher) Sum(data []byte) string {
	mh, err := multihash.Sum(data, h.code, -1)
	if err != nil {
		// Only reachable with an unregistered code, which NewHasher rules out.
		panic(fmt.Sprintf("multihash %s: %v", h.name, err))
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		panic(fmt.Sprintf("decode multihash %s: %v", h.name, err))
	}
	return hex.EncodeToString(decoded.Digest)
}

func (h *multihashHasher) Name() string {
	return h.name
}

func (h *multihashHasher) HexLen() int {
	return h.size * 2
}

// validID reports whether id is a well-formed fingerprint for h
func validID(h Hasher, id string) bool {
	return len(id) == h.HexLen() && models.IsHexID(id)
}
