package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// ObjectType identifies the kind of an encoded object
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeCommit ObjectType = "commit"
)

// commitRecord is the stable on-disk form of a commit.
// encoding/json sorts map keys, so equal commits encode to equal bytes.
type commitRecord struct {
	Timestamp string            `json:"timestamp"`
	Message   string            `json:"message"`
	Parents   []string          `json:"parents"`
	Tracked   map[string]string `json:"tracked"`
}

// EncodeBlob serializes a blob as "blob <len>\x00<filename>\x00<content>"
func EncodeBlob(b *models.Blob) []byte {
	var payload bytes.Buffer
	payload.WriteString(b.Filename)
	payload.WriteByte(0)
	payload.Write(b.Content)
	return withHeader(TypeBlob, payload.Bytes())
}

// DecodeBlob parses bytes produced by EncodeBlob
func DecodeBlob(data []byte) (*models.Blob, error) {
	payload, err := stripHeader(TypeBlob, data)
	if err != nil {
		return nil, err
	}
	sep := bytes.IndexByte(payload, 0)
	if sep == -1 {
		return nil, fmt.Errorf("invalid blob: missing filename separator")
	}
	content := append([]byte{}, payload[sep+1:]...)
	return models.NewBlob(string(payload[:sep]), content), nil
}

// EncodeCommit serializes the identity fields of a commit:
// timestamp, message, parents and tracked mapping.
func EncodeCommit(c *models.Commit) ([]byte, error) {
	rec := commitRecord{
		Timestamp: c.Timestamp.UTC().Format(time.RFC3339Nano),
		Message:   c.Message,
		Parents:   c.Parents,
		Tracked:   c.Tracked,
	}
	if rec.Parents == nil {
		rec.Parents = []string{}
	}
	if rec.Tracked == nil {
		rec.Tracked = map[string]string{}
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal commit: %w", err)
	}
	return withHeader(TypeCommit, payload), nil
}

// DecodeCommit parses bytes produced by EncodeCommit. The returned commit
// has no ID; callers that know the fingerprint set it.
func DecodeCommit(data []byte) (*models.Commit, error) {
	payload, err := stripHeader(TypeCommit, data)
	if err != nil {
		return nil, err
	}

	var rec commitRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal commit: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse commit timestamp %q: %w", rec.Timestamp, err)
	}
	return models.NewCommit(rec.Message, rec.Parents, rec.Tracked, ts), nil
}

// TypeOf returns the type recorded in an encoded object's header
func TypeOf(data []byte) (ObjectType, error) {
	typ, _, err := parseHeader(data)
	return typ, err
}

func withHeader(typ ObjectType, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", typ, len(payload))
	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	return append(out, payload...)
}

func parseHeader(data []byte) (ObjectType, []byte, error) {
	nul := bytes.IndexByte(data, 0)
	if nul == -1 {
		return "", nil, fmt.Errorf("invalid object format: no null byte found")
	}

	typ, size, ok := bytes.Cut(data[:nul], []byte{' '})
	if !ok {
		return "", nil, fmt.Errorf("invalid object header %q", data[:nul])
	}
	n, err := strconv.Atoi(string(size))
	if err != nil {
		return "", nil, fmt.Errorf("invalid object size %q: %w", size, err)
	}

	payload := data[nul+1:]
	if n != len(payload) {
		return "", nil, fmt.Errorf("object size mismatch: header %d, payload %d", n, len(payload))
	}
	return ObjectType(typ), payload, nil
}

func stripHeader(want ObjectType, data []byte) ([]byte, error) {
	typ, payload, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if typ != want {
		return nil, fmt.Errorf("expected %s object, got %s", want, typ)
	}
	return payload, nil
}
