package docs

import (
	"log/slog"
	"slices"
)

const (
	// DefaultFallbackLocale is fetched once when a requested locale cannot be retrieved.
	DefaultFallbackLocale = "en"
	// DefaultLocale is the active locale of a new loader.
	DefaultLocale = "en"
)

// DefaultLocales is the advertised locale set used when none is configured.
var DefaultLocales = []string{"mm", "en", "kn"}

// Option configures a Loader.
type Option func(*Loader)

// WithAvailableLocales sets the advertised locale set. It is metadata only: fetches are
// never checked against it. Empty input keeps the default.
func WithAvailableLocales(codes ...string) Option {
	return func(l *Loader) {
		if len(codes) > 0 {
			l.available = slices.Clone(codes)
		}
	}
}

// WithFallbackLocale overrides DefaultFallbackLocale.
func WithFallbackLocale(code string) Option {
	return func(l *Loader) {
		if code != "" {
			l.fallback = code
		}
	}
}

// WithInitialLocale sets the active locale before any fetch. No I/O is performed.
func WithInitialLocale(code string) Option {
	return func(l *Loader) {
		if code != "" {
			l.active = code
		}
	}
}

// WithLogger sets the loader logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}
