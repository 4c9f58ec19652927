package docs

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/localedocs/pkg/file"
)

// StorageSource reads locale resources from document storage (local directory or S3).
type StorageSource struct {
	reader  file.Reader
	pattern string
}

// NewStorageSource creates a source over reader. Resource paths follow pattern with the
// leading slash removed; an empty pattern means DefaultPathPattern.
func NewStorageSource(reader file.Reader, pattern string) *StorageSource {
	return &StorageSource{reader: reader, pattern: pattern}
}

// Path returns the storage path of the locale resource.
func (s *StorageSource) Path(locale string) string {
	return strings.TrimPrefix(ResourcePath(s.pattern, locale), "/")
}

// Fetch reads the resource. Missing objects are reported as a 404 StatusError so callers
// see the same failure shape as with an HTTP origin.
func (s *StorageSource) Fetch(ctx context.Context, locale string) ([]byte, error) {
	if s.reader == nil {
		return nil, ErrNilSource
	}

	data, err := s.reader.ReadFile(ctx, s.Path(locale))
	if err != nil {
		switch {
		case errors.Is(err, file.ErrFileNotFound), errors.Is(err, file.ErrIsDirectory):
			return nil, NewStatusError(http.StatusNotFound)
		case errors.Is(err, file.ErrInvalidPath):
			return nil, NewStatusError(http.StatusBadRequest)
		case errors.Is(err, file.ErrAccessDenied):
			return nil, NewStatusError(http.StatusForbidden)
		}
		return nil, err
	}
	return data, nil
}

// Exists reports whether the resource of locale is present in storage.
func (s *StorageSource) Exists(ctx context.Context, locale string) bool {
	if s.reader == nil {
		return false
	}
	return s.reader.Exists(ctx, s.Path(locale))
}

// Locales lists, in sorted order, the locale codes that have a resource in storage. It
// scans the directory in front of the {locale} placeholder, e.g. "locales" for the default
// pattern, and keeps the subdirectories holding a resource.
func (s *StorageSource) Locales(ctx context.Context) ([]string, error) {
	if s.reader == nil {
		return nil, ErrNilSource
	}

	pattern := s.pattern
	if pattern == "" {
		pattern = DefaultPathPattern
	}
	i := strings.Index(pattern, "{locale}")
	if i < 0 {
		return nil, ErrNoLocalePlaceholder
	}

	entries, err := s.reader.List(ctx, strings.Trim(pattern[:i], "/"))
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, e := range entries {
		if e.IsDir && s.Exists(ctx, e.Name) {
			codes = append(codes, e.Name)
		}
	}
	slices.Sort(codes)
	return codes, nil
}
