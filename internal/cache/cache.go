package cache

// LRU is a bounded least-recently-used cache.
//
// Capacity is exact: inserting a key into a full cache evicts the least
// recently used key first. Get, GetOrCreate and Put all count as uses.
//
// LRU is not safe for concurrent use.
type LRU[K comparable, V any] struct {
	entries  map[K]*lruEntry[K, V]
	order    *recencyList[K]
	capacity int
	onEvict  func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

type lruEntry[K comparable, V any] struct {
	value V
	node  *recencyNode[K]
}

// New creates a cache holding at most capacity entries.
// Capacities below 1 are raised to 1.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		entries:  make(map[K]*lruEntry[K, V], capacity),
		order:    newRecencyList[K](),
		capacity: capacity,
	}
}

// OnEvict registers fn to be called with every entry dropped for
// capacity. Delete and Clear do not call it.
func (c *LRU[K, V]) OnEvict(fn func(key K, value V)) {
	c.onEvict = fn
}

// Get retrieves a value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.Touch(e.node)
	return e.value, true
}

// Peek retrieves a value without affecting recency or statistics.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores a value as the most recently used entry, replacing any
// existing value for key.
func (c *LRU[K, V]) Put(key K, value V) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.Touch(e.node)
		return
	}
	c.insert(key, value)
}

// GetOrCreate returns the cached value for key, or calls create and
// caches its result. hit reports whether the value was already cached.
// A create error is returned as is and nothing is cached.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (value V, hit bool, err error) {
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.order.Touch(e.node)
		return e.value, true, nil
	}
	c.misses++
	value, err = create()
	if err != nil {
		return value, false, err
	}
	c.insert(key, value)
	return value, false, nil
}

func (c *LRU[K, V]) insert(key K, value V) {
	for len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = &lruEntry[K, V]{value: value, node: c.order.PushFront(key)}
}

func (c *LRU[K, V]) evictOldest() {
	key, ok := c.order.PopOldest()
	if !ok {
		return
	}
	e := c.entries[key]
	delete(c.entries, key)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(key, e.value)
	}
}

// Delete removes an entry.
// Returns true if the entry was found and removed.
func (c *LRU[K, V]) Delete(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(e.node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.order.Clear()
}

// Len returns the number of entries in the cache.
func (c *LRU[K, V]) Len() int {
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns the cached keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	return c.order.Keys()
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits counts lookups that found an entry.
	Hits uint64
	// Misses counts lookups that did not.
	Misses uint64
	// Evictions counts entries dropped for capacity.
	Evictions uint64
}

// HitRate returns hits over total lookups, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
