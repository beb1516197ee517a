package cache

const (
	shardBits = 6
	numShards = 1 << shardBits
)

// ShardedLRU spreads signature-keyed entries across 64 LRU shards to reduce
// lock contention under parallel lookups.
type ShardedLRU[V any] struct {
	shards [numShards]*LRU[uint64, V]
}

// NewShardedLRU creates a sharded cache. The capacity is divided evenly
// across all shards, with at least one entry per shard.
func NewShardedLRU[V any](capacity int) *ShardedLRU[V] {
	shardCapacity := max(capacity/numShards, 1)

	s := &ShardedLRU[V]{}
	for i := range numShards {
		s.shards[i] = NewLRU[uint64, V](shardCapacity)
	}
	return s
}

func (s *ShardedLRU[V]) shard(key uint64) *LRU[uint64, V] {
	return s.shards[key>>(64-shardBits)]
}

// Get returns a cached value.
func (s *ShardedLRU[V]) Get(key uint64) (V, bool) {
	return s.shard(key).Get(key)
}

// Set caches a value.
func (s *ShardedLRU[V]) Set(key uint64, value V) {
	s.shard(key).Set(key, value)
}

// Delete removes an entry.
func (s *ShardedLRU[V]) Delete(key uint64) bool {
	return s.shard(key).Delete(key)
}

// Len returns the total number of cached entries.
func (s *ShardedLRU[V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.Len()
	}
	return n
}

// Stats aggregates hit, miss and eviction counts over all shards.
func (s *ShardedLRU[V]) Stats() (hits, misses, evictions int64) {
	for _, sh := range s.shards {
		h, m, e := sh.Stats()
		hits += h
		misses += m
		evictions += e
	}
	return hits, misses, evictions
}

// Purge drops every entry.
func (s *ShardedLRU[V]) Purge() {
	for _, sh := range s.shards {
		sh.Invalidate(func(uint64) bool { return true })
	}
}
