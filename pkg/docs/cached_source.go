package docs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localedocs/pkg/logger"
)

// RedisClient is the subset of the go-redis client used by CachedSource.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedSource is a read-through Redis cache in front of another Source.
// Only successful bodies are cached; cache failures fall through to the origin.
type CachedSource struct {
	next   Source
	client RedisClient
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// CacheOption configures a CachedSource.
type CacheOption func(*CachedSource)

// WithCacheTTL sets the expiration of cached bodies. Zero keeps them until evicted.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(s *CachedSource) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithCachePrefix overrides the "localedocs:" key prefix.
func WithCachePrefix(prefix string) CacheOption {
	return func(s *CachedSource) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithCacheLogger sets the logger used for Redis failures.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(s *CachedSource) {
		if l != nil {
			s.log = l
		}
	}
}

// NewCachedSource wraps next with a Redis cache.
func NewCachedSource(next Source, client RedisClient, opts ...CacheOption) *CachedSource {
	s := &CachedSource{
		next:   next,
		client: client,
		prefix: "localedocs:",
		ttl:    10 * time.Minute,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key used for locale.
func (s *CachedSource) Key(locale string) string {
	return s.prefix + locale
}

// Fetch returns the cached body of locale, or fetches it from the wrapped source and
// caches it when it is valid JSON.
func (s *CachedSource) Fetch(ctx context.Context, locale string) ([]byte, error) {
	if s.next == nil {
		return nil, ErrNilSource
	}

	key := s.Key(locale)
	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return data, nil
	case !errors.Is(err, redis.Nil):
		s.log.WarnContext(ctx, "docs cache read failed",
			logger.Component("docs.cache"),
			logger.Locale(locale),
			logger.Error(err),
		)
	}

	data, err = s.next.Fetch(ctx, locale)
	if err != nil {
		return nil, err
	}

	// Bodies that cannot be parsed are never cached so a fixed origin is picked up at once
	if !json.Valid(data) {
		return data, nil
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.WarnContext(ctx, "docs cache write failed",
			logger.Component("docs.cache"),
			logger.Locale(locale),
			logger.Error(err),
		)
	}
	return data, nil
}
