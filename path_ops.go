package pathkit

import (
	"iter"
	"math"
)

// windingTolerance is the flattening tolerance used when curves and arcs
// are reduced to lines for winding tests.
const windingTolerance = 0.1

// Segments iterates the segments of m in path order, building each on
// first use.
func (m *SegmentMap) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i := range m.elements {
			s, err := m.At(i)
			if err != nil {
				return
			}
			if !yield(i, s) {
				return
			}
		}
	}
}

// Segments iterates freshly built segments of p without caching them.
// Use a SegmentCache when the same path is queried repeatedly.
func (p *Path) Segments(opts SolverOptions) iter.Seq2[int, Segment] {
	opts = opts.normalize()
	return func(yield func(int, Segment) bool) {
		var cur, sub Point
		for i, e := range p.elements {
			s, err := NewSegment(e, cur, sub, opts)
			if err != nil {
				return
			}
			if m, ok := s.(MoveSegment); ok {
				sub = m.Point
			}
			cur = s.End()
			if !yield(i, s) {
				return
			}
		}
	}
}

// Bounds returns the bounding box of every segment, including move
// points. An empty path has a zero Rect.
func (m *SegmentMap) Bounds() Rect { return segmentBounds(m.Segments()) }

// Winding returns the winding number of pt. Open subpaths are closed
// implicitly, as when filling.
func (m *SegmentMap) Winding(pt Point) int { return segmentWinding(m.Segments(), pt) }

// Contains reports whether pt is inside using the non-zero fill rule.
func (m *SegmentMap) Contains(pt Point) bool { return m.Winding(pt) != 0 }

// DistanceSquared returns the smallest squared distance from pt to any
// segment, or +Inf for a path with no drawable segments.
func (m *SegmentMap) DistanceSquared(pt Point) float64 {
	return segmentDistanceSquared(m.Segments(), pt)
}

// FirstWithin returns the first segment, in path order, within tolerance
// of pt. It stops at the first match rather than searching for the
// closest one.
func (m *SegmentMap) FirstWithin(pt Point, tolerance float64) (int, Segment, bool) {
	return firstWithin(m.Segments(), pt, tolerance)
}

// Bounds returns the tight bounding box of the path.
func (p *Path) Bounds() Rect {
	return segmentBounds(p.Segments(DefaultSolverOptions()))
}

// Winding returns the winding number of a point relative to the path.
// 0 = outside, non-zero = inside (for non-zero fill rule).
// Uses ray casting with a horizontal ray to the right.
func (p *Path) Winding(pt Point) int {
	return segmentWinding(p.Segments(DefaultSolverOptions()), pt)
}

// Contains tests if a point is inside the path using the non-zero fill rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// DistanceSquared returns the smallest squared distance from pt to the path.
func (p *Path) DistanceSquared(pt Point) float64 {
	return segmentDistanceSquared(p.Segments(DefaultSolverOptions()), pt)
}

func segmentBounds(segs iter.Seq2[int, Segment]) Rect {
	var (
		bbox Rect
		seen bool
	)
	for _, s := range segs {
		if !seen {
			bbox, seen = s.Bounds(), true
			continue
		}
		bbox = bbox.Union(s.Bounds())
	}
	return bbox
}

func segmentDistanceSquared(segs iter.Seq2[int, Segment], pt Point) float64 {
	best := math.Inf(1)
	for _, s := range segs {
		best = math.Min(best, s.DistanceSquared(pt))
	}
	return best
}

func firstWithin(segs iter.Seq2[int, Segment], pt Point, tolerance float64) (int, Segment, bool) {
	tol2 := tolerance * tolerance
	for i, s := range segs {
		if s.DistanceSquared(pt) <= tol2 {
			return i, s, true
		}
	}
	return -1, nil, false
}

func segmentWinding(segs iter.Seq2[int, Segment], pt Point) int {
	var (
		winding  int
		cur, sub Point
	)
	for _, seg := range segs {
		switch s := seg.(type) {
		case MoveSegment:
			winding += lineWinding(cur, sub, pt)
			sub = s.Point
		case LineSegment:
			winding += lineWinding(s.Line.P0, s.Line.P1, pt)
		case CloseSegment:
			winding += lineWinding(s.Line.P0, s.Line.P1, pt)
		case QuadSegment:
			winding += quadWinding(s.Curve, pt)
		case CubicSegment:
			winding += cubicWinding(s.Curve, pt)
		case *ArcSegment:
			prev := s.Start()
			s.flatten(windingTolerance, func(q Point) {
				winding += lineWinding(prev, q, pt)
				prev = q
			})
		}
		cur = seg.End()
	}
	return winding + lineWinding(cur, sub, pt)
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// quadWinding computes the winding contribution of a quadratic Bezier.
func quadWinding(q QuadBez, pt Point) int {
	minY := math.Min(math.Min(q.P0.Y, q.P1.Y), q.P2.Y)
	maxY := math.Max(math.Max(q.P0.Y, q.P1.Y), q.P2.Y)
	maxX := math.Max(math.Max(q.P0.X, q.P1.X), q.P2.X)
	if pt.Y < minY || pt.Y > maxY || pt.X > maxX {
		return 0
	}
	var winding int
	flattenQuadWinding(q, pt, &winding)
	return winding
}

func flattenQuadWinding(q QuadBez, pt Point, winding *int) {
	// Flatness test: distance from control point to chord
	if q.P1.Sub(q.P0.Mid(q.P2)).Length() <= windingTolerance {
		*winding += lineWinding(q.P0, q.P2, pt)
		return
	}
	q1, q2 := q.Subdivide()
	flattenQuadWinding(q1, pt, winding)
	flattenQuadWinding(q2, pt, winding)
}

// cubicWinding computes the winding contribution of a cubic Bezier.
func cubicWinding(c CubicBez, pt Point) int {
	minY := math.Min(math.Min(c.P0.Y, c.P1.Y), math.Min(c.P2.Y, c.P3.Y))
	maxY := math.Max(math.Max(c.P0.Y, c.P1.Y), math.Max(c.P2.Y, c.P3.Y))
	maxX := math.Max(math.Max(c.P0.X, c.P1.X), math.Max(c.P2.X, c.P3.X))
	if pt.Y < minY || pt.Y > maxY || pt.X > maxX {
		return 0
	}
	var winding int
	flattenCubicWinding(c, pt, &winding)
	return winding
}

func flattenCubicWinding(c CubicBez, pt Point, winding *int) {
	if cubicFlatness(c) <= windingTolerance {
		*winding += lineWinding(c.P0, c.P3, pt)
		return
	}
	c1, c2 := c.Subdivide()
	flattenCubicWinding(c1, pt, winding)
	flattenCubicWinding(c2, pt, winding)
}

// cubicFlatness returns the maximum squared deviation of the control
// points from the chord, scaled by 9.
func cubicFlatness(c CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y

	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}
