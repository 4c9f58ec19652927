package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage reads files below a base directory.
type LocalStorage struct {
	baseDir     string // absolute
	maxFileSize int64
}

// LocalOption configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalMaxFileSize limits the size of files returned by ReadFile.
func WithLocalMaxFileSize(n int64) LocalOption {
	return func(s *LocalStorage) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// NewLocalStorage creates a reader rooted at baseDir. The directory must exist.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	info, err := os.Stat(absBaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, baseDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, baseDir)
	}

	s := &LocalStorage{baseDir: absBaseDir, maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseDir returns the absolute root directory.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// ReadFile reads the file at p.
func (s *LocalStorage) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(p)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, p)
	}
	if info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, p)
	}

	data, err := io.ReadAll(io.LimitReader(f, s.maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return data, nil
}

// Exists reports whether p exists. Invalid paths and cancelled contexts report false.
func (s *LocalStorage) Exists(ctx context.Context, p string) bool {
	if ctx.Err() != nil {
		return false
	}
	absPath, err := s.resolvePath(p)
	if err != nil {
		return false
	}
	_, err = os.Stat(absPath)
	return err == nil
}

// List returns the entries of dir with paths relative to the base directory.
func (s *LocalStorage) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	dirEntries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(s.baseDir, filepath.Join(absPath, de.Name()))
		if err != nil {
			continue
		}

		e := Entry{
			Name:  de.Name(),
			Path:  filepath.ToSlash(rel),
			IsDir: de.IsDir(),
		}
		if !e.IsDir {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// resolvePath maps p inside baseDir and rejects anything that escapes it.
func (s *LocalStorage) resolvePath(p string) (string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, p)
	}

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if absPath != s.baseDir && !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return absPath, nil
}
