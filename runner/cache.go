package runner

import (
	"sync"

	"github.com/tacheck/tacheck/ta"
)

// CompiledComponents is the value the model cache stores: the already
// compiled component map a query.Compile call needs, keyed by component
// name (spec §5: "an owned, already-built map").
type CompiledComponents = map[string]*ta.Component

// cacheKey is spec §5's "(user-id, components-hash)" lookup key.
type cacheKey struct {
	userID         string
	componentsHash string
}

// Cache is spec §5's model cache: "A model cache maps (user-id,
// components-hash) -> compiled component map... accessed under a mutex by
// the outer layer; the core receives an owned, already-built map." It is
// intentionally a plain mutex-guarded map rather than anything fancier — a
// model cache's job here is "did we already compile this", not eviction
// policy or distributed coherence, both out of scope per spec §1.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]CompiledComponents
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]CompiledComponents)}
}

// Get looks up a previously-stored compiled component map for (userID,
// componentsHash).
func (c *Cache) Get(userID, componentsHash string) (CompiledComponents, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.entries[cacheKey{userID, componentsHash}]

	return m, ok
}

// Put stores components under (userID, componentsHash), overwriting any
// prior entry.
func (c *Cache) Put(userID, componentsHash string, components CompiledComponents) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{userID, componentsHash}] = components
}

// Len returns the number of cached entries, for metrics/tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
