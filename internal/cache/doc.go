// Package cache provides bounded LRU caches keyed by 64-bit signatures.
//
// Signatures are already well mixed, so the sharded cache picks a shard
// from the top bits of the key instead of hashing it again.
//
// Key features:
//   - Per-shard mutex for minimal contention
//   - Entry-count capacity, split evenly across shards
//   - Hit/miss counters for observability
package cache
