package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// LRU is a size-bounded least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int
	items     map[K]*list.Element
	evictList *list.List

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU creates a new LRU cache holding at most capacity entries.
// A capacity below 1 is treated as 1.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get returns a cached value.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches a value, evicting the least recently used entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value
		return
	}

	for c.evictList.Len() >= c.capacity {
		c.removeElement(c.evictList.Back())
		c.evictions.Add(1)
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value})
}

// Delete removes an entry. It reports whether the key was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if ok {
		c.removeElement(ent)
	}
	return ok
}

// Invalidate removes entries matching the predicate.
func (c *LRU[K, V]) Invalidate(predicate func(key K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for key, element := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, element)
		}
	}
	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns hit, miss and eviction counts.
func (c *LRU[K, V]) Stats() (hits, misses, evictions int64) {
	return c.hits.Load(), c.misses.Load(), c.evictions.Load()
}

func (c *LRU[K, V]) removeElement(e *list.Element) {
	if e == nil {
		return
	}
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*entry[K, V]).key)
}
