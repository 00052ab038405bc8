package pathkit

import (
	"fmt"

	"github.com/gogpu/pathkit/internal/cache"
)

// DefaultSegmentCacheCapacity is the number of paths a SegmentCache keeps
// when no capacity is given.
const DefaultSegmentCacheCapacity = 64

// SegmentMap holds the segments of one path, built lazily and memoized by
// element index. Repeated queries against the same map never recompute
// geometry.
type SegmentMap struct {
	elements []PathElement
	starts   []Point // current point before each element
	subpaths []Point // subpath start in effect at each element
	segments []Segment
	opts     SolverOptions
}

// NewSegmentMap snapshots p's elements. It fails with a *StructuralError
// when the path does not begin with a MoveTo.
func NewSegmentMap(p *Path, opts SolverOptions) (*SegmentMap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := len(p.elements)
	m := &SegmentMap{
		elements: make([]PathElement, n),
		starts:   make([]Point, n),
		subpaths: make([]Point, n),
		segments: make([]Segment, n),
		opts:     opts.normalize(),
	}
	copy(m.elements, p.elements)

	var cur, sub Point
	for i, e := range m.elements {
		m.starts[i] = cur
		switch e := e.(type) {
		case MoveTo:
			cur, sub = e.Point, e.Point
		case LineTo:
			cur = e.Point
		case QuadTo:
			cur = e.Point
		case CubicTo:
			cur = e.Point
		case ArcTo:
			cur = e.Point
		case Close:
			cur = sub
		}
		m.subpaths[i] = sub
	}
	return m, nil
}

// Len returns the number of segments.
func (m *SegmentMap) Len() int {
	return len(m.elements)
}

// At returns the segment for element i, building it on first use.
func (m *SegmentMap) At(i int) (Segment, error) {
	if i < 0 || i >= len(m.elements) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(m.elements))
	}
	if s := m.segments[i]; s != nil {
		return s, nil
	}
	s, err := NewSegment(m.elements[i], m.starts[i], m.subpaths[i], m.opts)
	if err != nil {
		return nil, &StructuralError{Index: i, Err: err}
	}
	m.segments[i] = s
	return s, nil
}

// All builds and returns every segment in path order.
func (m *SegmentMap) All() ([]Segment, error) {
	for i := range m.elements {
		if _, err := m.At(i); err != nil {
			return nil, err
		}
	}
	return m.segments, nil
}

// SegmentCache maps paths to their segment maps, keyed by PathID, and
// drops the least recently used map once capacity is reached.
//
// A path mutated after caching gets a new PathID, so its stale map is
// never returned; it ages out of the cache instead.
//
// SegmentCache is not safe for concurrent use.
type SegmentCache struct {
	lru  *cache.LRU[PathID, *SegmentMap]
	opts SolverOptions
}

// NewSegmentCache creates a cache of the given capacity whose segment maps
// use opts for curve distance queries. A capacity below 1 selects
// DefaultSegmentCacheCapacity.
func NewSegmentCache(capacity int, opts SolverOptions) *SegmentCache {
	if capacity < 1 {
		capacity = DefaultSegmentCacheCapacity
	}
	c := &SegmentCache{
		lru:  cache.New[PathID, *SegmentMap](capacity),
		opts: opts.normalize(),
	}
	c.lru.OnEvict(func(id PathID, m *SegmentMap) {
		Logger().Debug("segment cache: evicted path", "id", uint64(id), "segments", m.Len())
	})
	return c
}

// GetOrCreate returns the segment map for p, creating and caching it on a
// miss. A hit marks the path most recently used.
func (c *SegmentCache) GetOrCreate(p *Path) (*SegmentMap, error) {
	m, _, err := c.lru.GetOrCreate(p.ID(), func() (*SegmentMap, error) {
		return NewSegmentMap(p, c.opts)
	})
	return m, err
}

// Contains reports whether p's current identity is cached, without
// affecting recency.
func (c *SegmentCache) Contains(p *Path) bool {
	_, ok := c.lru.Peek(p.ID())
	return ok
}

// Len returns the number of cached paths.
func (c *SegmentCache) Len() int {
	return c.lru.Len()
}

// Capacity returns the maximum number of cached paths.
func (c *SegmentCache) Capacity() int {
	return c.lru.Capacity()
}

// Clear drops every cached segment map.
func (c *SegmentCache) Clear() {
	c.lru.Clear()
}

// SegmentCacheStats reports segment cache usage.
type SegmentCacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns cache statistics.
func (c *SegmentCache) Stats() SegmentCacheStats {
	s := c.lru.Stats()
	return SegmentCacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
	}
}
