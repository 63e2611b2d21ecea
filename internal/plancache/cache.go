// Package plancache provides a thread-safe LRU cache for compiled
// convolution plans, keyed by the full compilation request (index mappings
// plus output mask). The cache is an explicit, caller-owned object: the
// compiler core never caches implicitly, so plan lifecycle stays under the
// caller's control.
package plancache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/agbru/convplan/internal/plan"
)

// Config holds configuration for a plan cache.
type Config struct {
	// MaxEntries is the maximum number of cached plans.
	// Default: 64 entries.
	MaxEntries int

	// Enabled controls whether caching is active. A disabled cache compiles
	// on every lookup.
	// Default: true.
	Enabled bool
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 64,
		Enabled:    true,
	}
}

// cacheEntry holds one compiled plan under its request digest.
type cacheEntry struct {
	key  [32]byte
	plan *plan.Plan
}

// Cache is a thread-safe LRU cache of compiled plans. Plans are immutable,
// so cached entries are returned directly without copying.
type Cache struct {
	mu      sync.RWMutex
	config  Config
	entries map[[32]byte]*list.Element
	lru     *list.List

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a plan cache with the given configuration.
func New(config Config) *Cache {
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultConfig().MaxEntries
	}
	return &Cache{
		config:  config,
		entries: make(map[[32]byte]*list.Element),
		lru:     list.New(),
	}
}

// computeKey digests the full request. SHA-256 keeps the key fixed-size and
// collision-resistant regardless of the index sequence lengths.
func computeKey(req plan.Request) [32]byte {
	h := sha256.New()
	buf := make([]byte, 8)
	writeInts := func(vals []int) {
		binary.LittleEndian.PutUint64(buf, uint64(len(vals)))
		h.Write(buf)
		for _, v := range vals {
			binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
			h.Write(buf)
		}
	}
	writeInts(req.Idx1)
	writeInts(req.Idx2)
	binary.LittleEndian.PutUint64(buf, uint64(len(req.Mask)))
	h.Write(buf)
	for _, b := range req.Mask {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// Get retrieves a cached plan if available.
func (c *Cache) Get(req plan.Request) (*plan.Plan, bool) {
	if !c.config.Enabled {
		return nil, false
	}

	key := computeKey(req)

	c.mu.RLock()
	elem, found := c.entries[key]
	c.mu.RUnlock()

	if !found {
		c.misses.Add(1)
		return nil, false
	}

	c.mu.Lock()
	c.lru.MoveToFront(elem)
	c.mu.Unlock()

	c.hits.Add(1)
	return elem.Value.(*cacheEntry).plan, true
}

// Put stores a compiled plan under its request.
func (c *Cache) Put(req plan.Request, p *plan.Plan) {
	if !c.config.Enabled {
		return
	}

	key := computeKey(req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.entries[key]; found {
		return
	}

	for c.lru.Len() >= c.config.MaxEntries {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
		c.evictions.Add(1)
	}

	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, plan: p})
}

// GetOrCompile returns the cached plan for req, compiling and caching it on
// a miss. Concurrent misses for the same request may compile more than once;
// compilation is deterministic, so every result is identical and the last
// Put wins harmlessly.
func (c *Cache) GetOrCompile(ctx context.Context, req plan.Request, opts plan.Options) (*plan.Plan, error) {
	if p, ok := c.Get(req); ok {
		return p, nil
	}
	p, err := plan.Compile(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	c.Put(req, p)
	return p, nil
}

// Stats reports cumulative cache statistics.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	entries := c.lru.Len()
	c.mu.RUnlock()
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   entries,
	}
}
