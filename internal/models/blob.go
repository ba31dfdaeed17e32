// Package models defines the core data structures used throughout gitlet
// including blobs, commits, branches and merge results.
package models

// Blob is an immutable snapshot of one file's content.
// Filename salts the blob ID; it is not otherwise part of its identity.
type Blob struct {
	Filename string
	Content  []byte
}

// NewBlob creates a blob for the given file content
func NewBlob(filename string, content []byte) *Blob {
	if content == nil {
		content = []byte{}
	}
	return &Blob{Filename: filename, Content: content}
}
