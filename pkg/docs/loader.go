package docs

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/localedocs/pkg/logger"
)

// LocaleSetting is a session-wide locale value a Loader can follow.
// Subscribe must invoke fn immediately with the current locale and then on every change,
// delivering changes one at a time in the order they were applied. SetLocale reports
// whether the value changed (listeners run only on change) and returns after the
// listeners did.
type LocaleSetting interface {
	Locale() string
	SetLocale(ctx context.Context, code string) bool
	Subscribe(ctx context.Context, fn func(ctx context.Context, code string)) (unsubscribe func())
}

// State is a point-in-time snapshot of a Loader, shaped for presentation layers.
type State struct {
	Locale           string     `json:"locale"`
	Docs             []Document `json:"docs"`
	Loading          bool       `json:"loading"`
	Error            *string    `json:"error"`
	AvailableLocales []string   `json:"available_locales"`
	CachedLocales    []string   `json:"cached_locales"`
}

// Loader caches per-locale docs payloads and exposes the active locale's document list.
// All methods are safe for concurrent use. Concurrent fetches of the same locale are not
// coalesced.
type Loader struct {
	source     Source
	collection *Collection
	available  []string
	fallback   string
	log        *slog.Logger

	mu       sync.RWMutex
	active   string
	inflight int
	lastErr  error
	setting  LocaleSetting
	bindID   uint64
}

// NewLoader creates a loader reading from source.
func NewLoader(source Source, opts ...Option) *Loader {
	l := &Loader{
		source:     source,
		collection: NewCollection(),
		available:  slices.Clone(DefaultLocales),
		fallback:   DefaultFallbackLocale,
		active:     DefaultLocale,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FetchLocale fetches and caches the payload of code, whether or not it is already cached.
//
// On failure the error is recorded (see Err) and returned. If code is not the fallback
// locale and the fallback is not cached yet, the fallback is fetched exactly once; its
// outcome is only logged.
func (l *Loader) FetchLocale(ctx context.Context, code string) error {
	l.begin()
	defer l.end()

	err := l.fetch(ctx, code)
	if err == nil {
		return nil
	}

	l.setErr(err)
	l.log.ErrorContext(ctx, "failed to fetch docs",
		logger.Locale(code),
		logger.Error(err),
	)

	if code != l.fallback && !l.collection.Has(l.fallback) {
		l.log.WarnContext(ctx, "attempting to fall back to default locale",
			logger.Locale(code),
			logger.Fallback(l.fallback),
		)
		if ferr := l.fetch(ctx, l.fallback); ferr != nil {
			l.log.ErrorContext(ctx, "fallback fetch failed",
				logger.Locale(code),
				logger.Fallback(l.fallback),
				logger.Error(ferr),
			)
		}
	}

	return err
}

// ChangeLocale makes code the active locale and fetches it when it is not cached yet.
// A cache hit returns immediately without I/O.
//
// When the loader is bound to a LocaleSetting, the change goes through the setting so the
// bound listener performs the fetch and the active locale always follows the setting.
func (l *Loader) ChangeLocale(ctx context.Context, code string) error {
	l.mu.RLock()
	setting := l.setting
	l.mu.RUnlock()

	if setting == nil {
		return l.activate(ctx, code)
	}

	if setting.SetLocale(ctx, code) {
		if l.collection.Has(code) {
			return nil
		}
		return l.Err()
	}

	// The setting already holds code and the listener already made it active; only a
	// previously failed fetch is left to retry.
	if l.collection.Has(code) {
		return nil
	}
	return l.FetchLocale(ctx, code)
}

// Bind follows setting: the listener runs immediately with the current locale and on every
// change, synchronously switching the active locale and fetching it when uncached.
// The returned function unbinds; it is safe to call more than once.
func (l *Loader) Bind(ctx context.Context, setting LocaleSetting) (unbind func()) {
	l.mu.Lock()
	l.bindID++
	id := l.bindID
	l.setting = setting
	l.mu.Unlock()

	unsubscribe := setting.Subscribe(ctx, func(ctx context.Context, code string) {
		if setting.Locale() != code {
			return // superseded by a newer change
		}
		_ = l.activate(ctx, code) // failures are recorded and logged by FetchLocale
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			l.mu.Lock()
			if l.bindID == id {
				l.setting = nil
			}
			l.mu.Unlock()
		})
	}
}

// Docs returns the document list of the active locale, or an empty list when the active
// locale has no cached payload.
func (l *Loader) Docs() []Document {
	p, _ := l.collection.Get(l.ActiveLocale())
	return p.Docs()
}

// ActiveLocale returns the locale whose documents Docs reports.
func (l *Loader) ActiveLocale() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// IsLoading reports whether any fetch, fallback included, is in flight.
func (l *Loader) IsLoading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inflight > 0
}

// Err returns the failure of the most recent fetch, or nil. It is cleared whenever a new
// fetch starts and is never overwritten by a fallback attempt.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// AvailableLocales returns the advertised locale set.
func (l *Loader) AvailableLocales() []string {
	return slices.Clone(l.available)
}

// Has reports whether code has a cached payload.
func (l *Loader) Has(code string) bool {
	return l.collection.Has(code)
}

// State returns a consistent snapshot for presentation.
func (l *Loader) State() State {
	l.mu.RLock()
	active, loading, lastErr := l.active, l.inflight > 0, l.lastErr
	l.mu.RUnlock()

	p, _ := l.collection.Get(active)
	st := State{
		Locale:           active,
		Docs:             p.Docs(),
		Loading:          loading,
		AvailableLocales: l.AvailableLocales(),
		CachedLocales:    l.collection.Locales(),
	}
	if lastErr != nil {
		msg := lastErr.Error()
		st.Error = &msg
	}
	return st
}

func (l *Loader) activate(ctx context.Context, code string) error {
	l.mu.Lock()
	l.active = code
	l.mu.Unlock()

	if l.collection.Has(code) {
		return nil
	}
	return l.FetchLocale(ctx, code)
}

// fetch performs a single attempt and stores the payload on success.
func (l *Loader) fetch(ctx context.Context, code string) error {
	if l.source == nil {
		return &FetchError{Locale: code, Err: ErrNilSource}
	}

	data, err := l.source.Fetch(ctx, code)
	if err != nil {
		return &FetchError{Locale: code, Err: err}
	}

	p, err := ParsePayload(data)
	if err != nil {
		return &FetchError{Locale: code, Err: err}
	}

	l.collection.Put(code, p)
	l.log.DebugContext(ctx, "docs fetched",
		logger.Locale(code),
		logger.Count(len(p.docs)),
		slog.Int("cached_locales", l.collection.Len()),
	)
	return nil
}

func (l *Loader) begin() {
	l.mu.Lock()
	l.inflight++
	l.lastErr = nil
	l.mu.Unlock()
}

func (l *Loader) end() {
	l.mu.Lock()
	l.inflight--
	l.mu.Unlock()
}

func (l *Loader) setErr(err error) {
	l.mu.Lock()
	l.lastErr = err
	l.mu.Unlock()
}
