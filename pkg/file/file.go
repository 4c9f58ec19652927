package file

import (
	"context"
	"path"
	"strings"
)

// DefaultMaxFileSize caps how much of a single file is read into memory.
const DefaultMaxFileSize int64 = 10 << 20

// Entry represents a file or directory entry.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Reader is read-only access to a document tree.
// Implementations must be safe for concurrent use.
type Reader interface {
	// ReadFile returns the whole content of the file at p.
	ReadFile(ctx context.Context, p string) ([]byte, error)
	// Exists reports whether a file or directory exists at p.
	Exists(ctx context.Context, p string) bool
	// List returns the entries of dir (non-recursive).
	List(ctx context.Context, dir string) ([]Entry, error)
}

// cleanKey normalizes a slash-separated storage key and rejects traversal.
func cleanKey(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if strings.ContainsRune(p, 0) {
		return "", ErrInvalidPath
	}
	return p, nil
}
