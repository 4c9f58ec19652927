package docs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	// ErrInvalidPayload is returned when a resource body is not a JSON object.
	ErrInvalidPayload = errors.New("invalid docs payload")

	// ErrNotFound is returned by storage-backed sources when the resource does not exist.
	ErrNotFound = errors.New("docs resource not found")

	// ErrNilSource is returned when a loader is used without a source.
	ErrNilSource = errors.New("docs source is nil")

	// ErrNoLocalePlaceholder is returned when a path pattern has no {locale} segment to scan.
	ErrNoLocalePlaceholder = errors.New("path pattern has no {locale} placeholder")

	// ErrBodyTooLarge is returned when an origin response exceeds the configured size limit.
	ErrBodyTooLarge = errors.New("docs response body too large")
)

// StatusError describes a non-OK response from the docs origin.
type StatusError struct {
	StatusCode int
	Status     string // Status text, e.g. "Not Found"
}

// NewStatusError builds a StatusError with the canonical status text for code.
func NewStatusError(code int) *StatusError {
	return &StatusError{StatusCode: code, Status: http.StatusText(code)}
}

// Is reports 404 responses as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return strconv.Itoa(e.StatusCode)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Status)
}

// FetchError wraps any failure to obtain docs for a locale.
type FetchError struct {
	Locale string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch docs for locale %q: %v", e.Locale, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusCode returns the origin status code carried by err, or 0 when err does not come
// from a non-OK response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
