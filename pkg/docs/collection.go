package docs

import (
	"maps"
	"slices"
	"sync"
)

// Collection maps locale codes to successfully fetched payloads.
// It is safe for concurrent use.
type Collection struct {
	mu      sync.RWMutex
	entries map[string]*Payload
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{entries: make(map[string]*Payload)}
}

// Get returns the payload cached for locale.
func (c *Collection) Get(locale string) (*Payload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[locale]
	return p, ok
}

// Has reports whether locale has a cached payload.
func (c *Collection) Has(locale string) bool {
	_, ok := c.Get(locale)
	return ok
}

// Put stores a payload. Nil payloads are ignored so an entry always means a successful fetch.
func (c *Collection) Put(locale string, p *Payload) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[locale] = p
}

// Locales returns the cached locale codes in sorted order.
func (c *Collection) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.entries))
}

// Len returns the number of cached locales.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
