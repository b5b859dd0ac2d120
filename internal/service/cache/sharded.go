package cache

import (
	"hash/maphash"
	"time"
)

// Sharded spreads entries across several TTL caches to reduce lock
// contention on hot read paths.
type Sharded[K comparable, V any] struct {
	seed   maphash.Seed
	shards []*TTL[K, V]
	mask   uint64
}

// NewSharded creates a sharded cache. numShards is rounded up to a power of
// two; capacity is split evenly between shards.
func NewSharded[K comparable, V any](name string, capacity int, ttl time.Duration, numShards int, opts ...Option) *Sharded[K, V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := max(capacity/n, 1)
	shards := make([]*TTL[K, V], n)
	for i := range shards {
		shards[i] = New[K, V](name, perShard, ttl, opts...)
	}
	return &Sharded[K, V]{seed: maphash.MakeSeed(), shards: shards, mask: uint64(n - 1)}
}

func (s *Sharded[K, V]) shard(key K) *TTL[K, V] {
	return s.shards[maphash.Comparable(s.seed, key)&s.mask]
}

func (s *Sharded[K, V]) Get(key K) (V, bool) { return s.shard(key).Get(key) }

func (s *Sharded[K, V]) Set(key K, value V) { s.shard(key).Set(key, value) }

func (s *Sharded[K, V]) Invalidate(key K) { s.shard(key).Invalidate(key) }

// Clear empties every shard.
func (s *Sharded[K, V]) Clear() {
	for _, sh := range s.shards {
		sh.Clear()
	}
}

// Stop ends every shard's background sweep.
func (s *Sharded[K, V]) Stop() {
	for _, sh := range s.shards {
		sh.Stop()
	}
}

// Metrics aggregates the metrics of all shards.
func (s *Sharded[K, V]) Metrics() Metrics {
	var total Metrics
	for _, sh := range s.shards {
		m := sh.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
