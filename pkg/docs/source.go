package docs

import (
	"context"
	"strings"
)

// DefaultPathPattern is the resource convention for locale docs. The {locale} placeholder
// is replaced with the requested locale code.
const DefaultPathPattern = "/locales/{locale}/docs.json"

// Source fetches the raw body of a locale resource.
// Implementations must be safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context, locale string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, locale string) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, locale string) ([]byte, error) {
	return f(ctx, locale)
}

// ResourcePath expands pattern for locale. An empty pattern means DefaultPathPattern.
func ResourcePath(pattern, locale string) string {
	if pattern == "" {
		pattern = DefaultPathPattern
	}
	return strings.ReplaceAll(pattern, "{locale}", locale)
}
