package store

import (
	"testing"
	"time"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBlob_Format(t *testing.T) {
	data := EncodeBlob(models.NewBlob("a.txt", []byte("hi")))
	assert.Equal(t, []byte("blob 8\x00a.txt\x00hi"), data)

	typ, err := TypeOf(data)
	require.NoError(t, err)
	assert.Equal(t, TypeBlob, typ)
}

func TestDecodeBlob_ContentMayContainNul(t *testing.T) {
	content := []byte("a\x00b\x00")
	b, err := DecodeBlob(EncodeBlob(models.NewBlob("bin", content)))
	require.NoError(t, err)
	assert.Equal(t, "bin", b.Filename)
	assert.Equal(t, content, b.Content)
}

func TestDecodeBlob_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no header", []byte("blob")},
		{"bad size", []byte("blob x\x00a\x00b")},
		{"size mismatch", []byte("blob 9\x00a\x00b")},
		{"wrong type", []byte("commit 3\x00a\x00b")},
		{"no filename separator", []byte("blob 3\x00abc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBlob(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestEncodeCommit_Deterministic(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6, time.FixedZone("X", 3600))
	tracked := map[string]string{"b.txt": "2", "a.txt": "1", "c.txt": "3"}

	first, err := EncodeCommit(models.NewCommit("msg", []string{"p"}, tracked, ts))
	require.NoError(t, err)
	second, err := EncodeCommit(models.NewCommit("msg", []string{"p"}, map[string]string{"c.txt": "3", "a.txt": "1", "b.txt": "2"}, ts.UTC()))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeCommit_RootIsStable(t *testing.T) {
	data, err := EncodeCommit(models.NewRootCommit())
	require.NoError(t, err)
	assert.Equal(t,
		`commit 89`+"\x00"+`{"timestamp":"1970-01-01T00:00:00Z","message":"initial commit","parents":[],"tracked":{}}`,
		string(data))

	h, err := NewHasher(config.HashSHA1)
	require.NoError(t, err)
	other, err := EncodeCommit(models.NewRootCommit())
	require.NoError(t, err)
	assert.Equal(t, h.Sum(data), h.Sum(other))
}

func TestEncodeCommit_FieldsAffectID(t *testing.T) {
	h, err := NewHasher(config.HashSHA1)
	require.NoError(t, err)
	ts := time.Unix(100, 0)

	base := models.NewCommit("m", []string{"p"}, map[string]string{"a": "1"}, ts)
	variants := []*models.Commit{
		models.NewCommit("m2", []string{"p"}, map[string]string{"a": "1"}, ts),
		models.NewCommit("m", []string{"q"}, map[string]string{"a": "1"}, ts),
		models.NewCommit("m", []string{"p"}, map[string]string{"a": "2"}, ts),
		models.NewCommit("m", []string{"p"}, map[string]string{"a": "1"}, ts.Add(time.Second)),
	}

	baseData, err := EncodeCommit(base)
	require.NoError(t, err)
	for _, v := range variants {
		data, err := EncodeCommit(v)
		require.NoError(t, err)
		assert.NotEqual(t, h.Sum(baseData), h.Sum(data))
	}
}

func TestDecodeCommit(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)
	data, err := EncodeCommit(models.NewCommit("Merged a into b.", []string{"p1", "p2"}, map[string]string{"f": "1"}, ts))
	require.NoError(t, err)

	c, err := DecodeCommit(data)
	require.NoError(t, err)
	assert.Equal(t, "Merged a into b.", c.Message)
	assert.True(t, ts.Equal(c.Timestamp))
	assert.Equal(t, []string{"p1", "p2"}, c.Parents)
	assert.Equal(t, map[string]string{"f": "1"}, c.Tracked)
	assert.Empty(t, c.ID)
}

func TestDecodeCommit_Rejects(t *testing.T) {
	_, err := DecodeCommit([]byte("commit 2\x00{}"))
	assert.Error(t, err, "missing timestamp")

	_, err = DecodeCommit([]byte("commit 3\x00{x}"))
	assert.Error(t, err)

	_, err = DecodeCommit(EncodeBlob(models.NewBlob("a", nil)))
	assert.Error(t, err)
}
