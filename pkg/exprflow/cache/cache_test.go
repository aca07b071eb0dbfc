package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMiss(t *testing.T) {
	c := New[int]()
	_, ok := c.Get("r1", "1 + 1")
	assert.False(t, ok)
}

func TestPutGet(t *testing.T) {
	c := New[int]()
	c.Put("r1", "1 + 1", 2, 10)

	v, ok := c.Get("r1", "1 + 1")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len("r1"))

	// Other owners don't see the entry.
	_, ok = c.Get("r2", "1 + 1")
	assert.False(t, ok)
}

func TestPutReplacesExistingKey(t *testing.T) {
	c := New[int]()
	c.Put("r1", "e", 1, 10)
	c.Put("r1", "e", 2, 10)

	v, ok := c.Get("r1", "e")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len("r1"), "at most one entry per key")
}

func TestLimitEnforced(t *testing.T) {
	c := New[int]()
	for i := 0; i < 10; i++ {
		c.Put("r1", fmt.Sprintf("expr-%d", i), i, 3)
	}
	assert.Equal(t, 3, c.Len("r1"))
}

func TestLRUEvictionOrder(t *testing.T) {
	c := New[int]()
	c.Put("r1", "a", 1, 2)
	c.Put("r1", "b", 2, 2)

	// Touch "a" so "b" becomes the oldest.
	_, ok := c.Get("r1", "a")
	require.True(t, ok)

	evicted := c.Put("r1", "c", 3, 2)
	assert.Equal(t, 1, evicted)

	_, ok = c.Get("r1", "a")
	assert.True(t, ok, "recently touched entry survives")
	_, ok = c.Get("r1", "b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.Get("r1", "c")
	assert.True(t, ok)
}

func TestSurvivorsAreMostRecentlyTouched(t *testing.T) {
	c := New[int]()
	const limit = 3
	for i := 0; i < 5; i++ {
		c.Put("r1", fmt.Sprintf("e%d", i), i, limit)
	}
	// Survivors: the limit most recently touched keys (e2, e3, e4).
	for i := 0; i < 2; i++ {
		_, ok := c.Get("r1", fmt.Sprintf("e%d", i))
		assert.False(t, ok, "e%d", i)
	}
	for i := 2; i < 5; i++ {
		_, ok := c.Get("r1", fmt.Sprintf("e%d", i))
		assert.True(t, ok, "e%d", i)
	}
}

func TestPerOwnerIsolation(t *testing.T) {
	c := New[int]()
	c.Put("r1", "x", 1, 1)
	c.Put("r2", "x", 2, 1)
	c.Put("r2", "y", 3, 1) // evicts only within r2

	assert.Equal(t, 1, c.Len("r1"))
	assert.Equal(t, 1, c.Len("r2"))

	v, ok := c.Get("r1", "x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestPurge(t *testing.T) {
	c := New[int]()
	c.Put("r1", "a", 1, 10)
	c.Put("r2", "b", 2, 10)

	c.Purge("r1")
	assert.Equal(t, 0, c.Len("r1"))
	assert.Equal(t, 1, c.Len("r2"))

	c.PurgeAll()
	assert.Equal(t, 0, c.Len("r2"))
}

func TestZeroLimitNeverEvicts(t *testing.T) {
	c := New[int]()
	for i := 0; i < 5; i++ {
		c.Put("r1", fmt.Sprintf("e%d", i), i, 0)
	}
	assert.Equal(t, 5, c.Len("r1"))
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("expr-%d", i%20)
				if i%5 == 0 {
					c.Put("r1", key, i, 10)
				} else {
					c.Get("r1", key)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len("r1"), 10)
}
