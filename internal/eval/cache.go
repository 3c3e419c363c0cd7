package eval

import "sync"

// AnalysisCache remembers recent analyses by FEN so repeated requests for
// an unchanged board skip the engine. The oldest entry is evicted first.
type AnalysisCache struct {
	mu      sync.Mutex
	order   []string
	entries map[string]Analysis
	maxSize int
	hits    uint64
	misses  uint64
}

// NewAnalysisCache creates a cache holding at most maxSize analyses.
func NewAnalysisCache(maxSize int) *AnalysisCache {
	if maxSize <= 0 {
		maxSize = 256 // default
	}
	return &AnalysisCache{
		order:   make([]string, 0, maxSize),
		entries: make(map[string]Analysis),
		maxSize: maxSize,
	}
}

// Get returns the cached analysis for fen.
func (c *AnalysisCache) Get(fen string) (Analysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.entries[fen]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return a, ok
}

// Put stores a for fen. Storing a fen again replaces its value without
// changing its age.
func (c *AnalysisCache) Put(fen string, a Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[fen]; ok {
		c.entries[fen] = a
		return
	}

	// If at capacity, remove oldest
	if len(c.order) >= c.maxSize {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}

	c.order = append(c.order, fen)
	c.entries[fen] = a
}

// Len returns the number of cached analyses.
func (c *AnalysisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Stats returns the hit and miss counts.
func (c *AnalysisCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
