package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_Basic(t *testing.T) {
	c := NewLRU[uint64, string](2)

	c.Set(1, "a")
	c.Set(2, "b")

	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	// 2 is now least recently used.
	c.Set(3, "c")

	_, ok = c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())

	hits, misses, evictions := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, int64(1), evictions)
}

func TestLRU_UpdateKeepsSize(t *testing.T) {
	c := NewLRU[uint64, int](2)
	c.Set(1, 10)
	c.Set(1, 11)
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 11, v)
}

func TestLRU_DeleteAndInvalidate(t *testing.T) {
	c := NewLRU[uint64, int](10)
	for i := range uint64(6) {
		c.Set(i, int(i))
	}

	assert.True(t, c.Delete(0))
	assert.False(t, c.Delete(0))

	c.Invalidate(func(k uint64) bool { return k%2 == 1 })
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(2)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.False(t, ok)
}

func TestLRU_MinimumCapacity(t *testing.T) {
	c := NewLRU[uint64, int](0)
	c.Set(1, 1)
	c.Set(2, 2)
	assert.Equal(t, 1, c.Len())
}

func TestShardedLRU_Concurrent(t *testing.T) {
	s := NewShardedLRU[uint64](1 << 16)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 256 {
				key := uint64(g*256+i) * 0x9E3779B97F4A7C15
				s.Set(key, key)
				v, ok := s.Get(key)
				assert.True(t, ok)
				assert.Equal(t, key, v)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 8*256, s.Len())
	hits, _, _ := s.Stats()
	assert.Equal(t, int64(8*256), hits)

	s.Purge()
	assert.Equal(t, 0, s.Len())
}
