package docsite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dmitrymomot/localedocs/pkg/docs"
	"github.com/dmitrymomot/localedocs/pkg/locale"
	"github.com/dmitrymomot/localedocs/pkg/logger"
)

// Session is one consumer of the docs: its locale setting and the loader bound to it.
type Session struct {
	ID     uuid.UUID
	Locale *locale.Store
	Loader *docs.Loader

	unbind func()
}

// Registry keeps live sessions in an LRU. Evicted sessions are unbound from their store.
type Registry struct {
	cache     *lru.Cache[uuid.UUID, *Session]
	newLoader func(log *slog.Logger) *docs.Loader
	log       *slog.Logger
}

// NewRegistry creates a registry holding at most size sessions. newLoader builds the
// loader of each new session.
func NewRegistry(size int, newLoader func(log *slog.Logger) *docs.Loader, log *slog.Logger) (*Registry, error) {
	if log == nil {
		log = logger.Discard()
	}
	reg := &Registry{newLoader: newLoader, log: log}

	cache, err := lru.NewWithEvict(size, func(id uuid.UUID, s *Session) {
		s.close()
		reg.log.Debug("docs session evicted", logger.SessionID(id))
	})
	if err != nil {
		return nil, fmt.Errorf("session registry: %w", err)
	}
	reg.cache = cache
	return reg, nil
}

// Get returns a live session.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	return r.cache.Get(id)
}

// Create starts a session on initial and binds its loader, which fetches the initial
// locale before Create returns.
func (r *Registry) Create(ctx context.Context, initial string) *Session {
	id := uuid.New()
	log := r.log.With(logger.SessionID(id))

	s := &Session{
		ID:     id,
		Locale: locale.NewStore(initial),
		Loader: r.newLoader(log),
	}
	s.unbind = s.Loader.Bind(ctx, s.Locale)
	r.cache.Add(id, s)

	log.DebugContext(ctx, "docs session created", logger.Locale(initial))
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close unbinds every session.
func (r *Registry) Close() {
	r.cache.Purge()
}

func (s *Session) close() {
	if s.unbind != nil {
		s.unbind()
	}
}
