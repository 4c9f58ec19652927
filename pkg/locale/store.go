package locale

import (
	"context"
	"slices"
	"sync"
)

// Listener receives the active locale. It runs synchronously inside Subscribe and SetLocale
// and must not call SetLocale or Subscribe on the same store.
type Listener = func(ctx context.Context, code string)

type subscription struct {
	id uint64
	fn Listener
}

// Store holds one session's active locale. All methods are safe for concurrent use.
//
// Changes are delivered one at a time and in the order they were applied: a SetLocale call
// waits until the listeners of the previous change have returned, so the last notification
// a listener sees is always the current value. Listeners may read the locale.
type Store struct {
	notify sync.Mutex // serializes change + delivery

	mu     sync.RWMutex
	code   string
	subs   []subscription
	nextID uint64
}

// NewStore creates a store with the given initial locale.
func NewStore(initial string) *Store {
	return &Store{code: initial}
}

// Locale returns the active locale.
func (s *Store) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.code
}

// SetLocale changes the active locale and notifies listeners. Setting the current value is
// a no-op and returns false.
func (s *Store) SetLocale(ctx context.Context, code string) bool {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	if s.code == code {
		s.mu.Unlock()
		return false
	}
	s.code = code
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ctx, code)
	}
	return true
}

// Subscribe registers fn and invokes it immediately with the current locale.
// The returned function removes the listener; it is safe to call more than once.
func (s *Store) Subscribe(ctx context.Context, fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	code := s.code
	s.mu.Unlock()

	fn(ctx, code)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Len returns the number of registered listeners.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
