// Package cache provides the bounded LRU cache behind pathkit's segment
// cache.
//
// # LRU[K, V]
//
// An exact-capacity least-recently-used cache. A map gives O(1) lookup and
// a sentinel ring of keys tracks recency, so Get, Put and eviction are all
// O(1).
//
//	c := cache.New[uint64, string](2)
//	c.Put(1, "a")
//	c.Put(2, "b")
//	c.Put(3, "c") // evicts 1
//	_, ok := c.Get(1) // false, counted as a miss
//
// # Thread Safety
//
// LRU is not safe for concurrent use. pathkit confines each cache to the
// goroutine that drives its hit-test engine.
package cache
