// Package cache provides the concurrent LRU table behind the engine's
// compilation cache.
//
// The table is shared across registries and keyed by (owner, expression),
// where the owner is the registry id. Reads go through a sync.Map and
// never block one another; a hit only performs an atomic store to bump the
// entry's access counter. Inserts and evictions serialize on a mutex, and
// eviction decisions read access counters that may lag in-flight reads by
// a moment — under that bounded staleness the surviving set still
// converges to the most recently used keys.
package cache

import (
	"sync"
	"sync/atomic"
)

// Key identifies a cached artifact: the owning registry and the exact
// expression text.
type Key struct {
	Owner string
	Expr  string
}

// entry pairs an artifact with its last-access stamp. The stamp is drawn
// from the table's monotonic counter and updated with an atomic store on
// every hit.
type entry[V any] struct {
	val  V
	last atomic.Uint64
}

// LRU is a concurrent least-recently-used table with per-owner limits.
// The zero value is not usable; call New.
type LRU[V any] struct {
	entries sync.Map // Key -> *entry[V]
	clock   atomic.Uint64

	mu     sync.Mutex // guards inserts, evictions, and counts
	counts map[string]int
}

// New creates an empty table.
func New[V any]() *LRU[V] {
	return &LRU[V]{
		counts: make(map[string]int),
	}
}

// Get returns the artifact cached for (owner, expr). A hit bumps the
// entry's access stamp.
func (c *LRU[V]) Get(owner, expr string) (V, bool) {
	v, ok := c.entries.Load(Key{Owner: owner, Expr: expr})
	if !ok {
		var zero V
		return zero, false
	}
	e := v.(*entry[V])
	e.last.Store(c.clock.Add(1))
	return e.val, true
}

// Put inserts an artifact for (owner, expr) and evicts the owner's
// least-recently-used entries until its count is within limit. A put to an
// existing key replaces the artifact and counts as a touch, preserving the
// at-most-one-entry-per-key invariant.
//
// Returns the number of entries evicted.
func (c *LRU[V]) Put(owner, expr string, val V, limit int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{Owner: owner, Expr: expr}
	if _, ok := c.entries.Load(key); ok {
		// Replace the whole entry: concurrent readers never see a
		// half-written value.
		e := &entry[V]{val: val}
		e.last.Store(c.clock.Add(1))
		c.entries.Store(key, e)
		return 0
	}

	e := &entry[V]{val: val}
	e.last.Store(c.clock.Add(1))
	c.entries.Store(key, e)
	c.counts[owner]++

	evicted := 0
	for limit > 0 && c.counts[owner] > limit {
		if !c.evictOldestLocked(owner) {
			break
		}
		evicted++
	}
	return evicted
}

// evictOldestLocked removes the owner's entry with the smallest access
// stamp. Caller holds c.mu.
func (c *LRU[V]) evictOldestLocked(owner string) bool {
	var (
		oldestKey Key
		oldest    uint64
		found     bool
	)
	c.entries.Range(func(k, v any) bool {
		key := k.(Key)
		if key.Owner != owner {
			return true
		}
		last := v.(*entry[V]).last.Load()
		if !found || last < oldest {
			oldestKey = key
			oldest = last
			found = true
		}
		return true
	})
	if !found {
		return false
	}
	c.entries.Delete(oldestKey)
	c.counts[owner]--
	return true
}

// Len returns the number of entries cached for owner.
func (c *LRU[V]) Len(owner string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[owner]
}

// Purge removes every entry for owner.
func (c *LRU[V]) Purge(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Range(func(k, _ any) bool {
		if k.(Key).Owner == owner {
			c.entries.Delete(k)
		}
		return true
	})
	delete(c.counts, owner)
}

// PurgeAll removes every entry.
func (c *LRU[V]) PurgeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Range(func(k, _ any) bool {
		c.entries.Delete(k)
		return true
	})
	c.counts = make(map[string]int)
}
