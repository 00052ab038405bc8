package hittest

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/anchor"
)

// ErrNoHit is returned by MarkerLocation when the cursor does not hit the
// node.
var ErrNoHit = errors.New("hittest: cursor does not hit node")

// Engine hit-tests nodes against a cursor.
//
// Path segments are memoized in a bounded segment cache, so repeated
// tests against an unchanged path do not rebuild its geometry.
type Engine struct {
	tolerance float64
	segments  *pathkit.SegmentCache
	log       *slog.Logger
}

// NewEngine creates an engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		tolerance: o.tolerance,
		segments:  pathkit.NewSegmentCache(o.cacheCapacity, o.solver),
		log:       o.logger,
	}
}

// Tolerance returns the highlight tolerance.
func (e *Engine) Tolerance() float64 { return e.tolerance }

// CacheStats returns statistics of the path segment cache.
func (e *Engine) CacheStats() pathkit.SegmentCacheStats { return e.segments.Stats() }

func (e *Engine) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return pathkit.Logger()
}

// Test reports whether cursor hits n.
//
// Filled shapes hit when the cursor is inside them or within tolerance of
// their outline. Unfilled shapes and lines hit only within tolerance of
// the outline. A path node whose path is invalid never hits.
func (e *Engine) Test(n Node, cursor pathkit.Point) bool {
	hit, err := e.test(n, cursor)
	if err != nil {
		e.logger().Warn("hittest: node not testable", "node", nodeName(n), "err", err)
		return false
	}
	return hit
}

// HitAll returns every node hit by cursor, in input order.
func (e *Engine) HitAll(nodes []Node, cursor pathkit.Point) []Node {
	var hits []Node
	for _, n := range nodes {
		if e.Test(n, cursor) {
			hits = append(hits, n)
		}
	}
	return hits
}

// BestMatch returns the hit node with the smallest bounding box area.
// Among nodes of equal area the first in input order wins.
func (e *Engine) BestMatch(nodes []Node, cursor pathkit.Point) (Node, bool) {
	var (
		best     Node
		bestArea = math.Inf(1)
	)
	for _, n := range nodes {
		if !e.Test(n, cursor) {
			continue
		}
		if area := e.bounds(n).Area(); best == nil || area < bestArea {
			best, bestArea = n, area
		}
	}
	return best, best != nil
}

// MarkerLocation returns where a selection marker is placed on n for
// cursor. It fails with ErrNoHit when cursor does not hit n.
//
// Rectangles snap to the anchor point of the third of each axis the
// cursor falls into, measured along the rectangle's own rotated axes. Lines snap to their midpoint. Polylines and polygons
// snap to the nearest vertex within tolerance, otherwise to the midpoint
// of the nearest edge. Paths snap to the midpoint of the nearest segment.
// Ellipses place the marker on the outline along the ray from the center
// through the cursor.
func (e *Engine) MarkerLocation(n Node, cursor pathkit.Point) (pathkit.Point, error) {
	hit, err := e.test(n, cursor)
	if err != nil {
		return pathkit.Point{}, fmt.Errorf("hittest: marker for %q: %w", nodeName(n), err)
	}
	if !hit {
		return pathkit.Point{}, fmt.Errorf("%w %q at %v", ErrNoHit, nodeName(n), cursor)
	}

	switch n := n.(type) {
	case *Rect:
		m := n.frame()
		local := rectMarker(n.local(), m.Invert().TransformPoint(cursor))
		return m.TransformPoint(local), nil
	case *Ellipse:
		return ellipseMarker(n, cursor), nil
	case *Line:
		return n.segment().Midpoint(), nil
	case *Polyline:
		return chainMarker(n.Points, false, cursor, e.tolerance), nil
	case *Polygon:
		return chainMarker(n.Points, true, cursor, e.tolerance), nil
	case *PathNode:
		m, err := e.segments.GetOrCreate(n.Path)
		if err != nil {
			return pathkit.Point{}, fmt.Errorf("hittest: marker for %q: %w", n.ID, err)
		}
		return pathMarker(m, cursor), nil
	}
	return pathkit.Point{}, fmt.Errorf("%w %q at %v", ErrNoHit, nodeName(n), cursor)
}

func (e *Engine) test(n Node, cursor pathkit.Point) (bool, error) {
	tol := e.tolerance
	switch n := n.(type) {
	case *Rect:
		return testRect(n.local(), n.Filled, n.frame().Invert().TransformPoint(cursor), tol), nil
	case *Ellipse:
		return testEllipse(n, cursor, tol), nil
	case *Line:
		return n.segment().DistanceSquared(cursor) <= tol*tol, nil
	case *Polyline:
		return testChain(n.Points, false, cursor, tol), nil
	case *Polygon:
		if n.Filled && len(n.Points) > 2 && polygonPath(n.Points).Contains(cursor) {
			return true, nil
		}
		return testChain(n.Points, true, cursor, tol), nil
	case *PathNode:
		return e.testPath(n, cursor)
	}
	return false, nil
}

func (e *Engine) testPath(n *PathNode, cursor pathkit.Point) (bool, error) {
	if n.Path == nil {
		return false, nil
	}
	m, err := e.segments.GetOrCreate(n.Path)
	if err != nil {
		return false, err
	}
	if !m.Bounds().Intersects(window(cursor, e.tolerance)) {
		return false, nil
	}
	if n.Filled && m.Contains(cursor) {
		return true, nil
	}
	_, _, ok := m.FirstWithin(cursor, e.tolerance)
	return ok, nil
}

// bounds returns n's bounding box, using the segment cache for paths.
func (e *Engine) bounds(n Node) pathkit.Rect {
	if p, ok := n.(*PathNode); ok && p.Path != nil {
		if m, err := e.segments.GetOrCreate(p.Path); err == nil {
			return m.Bounds()
		}
	}
	return n.Bounds()
}

// window is the square tolerance window around the cursor.
func window(cursor pathkit.Point, tol float64) pathkit.Rect {
	return pathkit.Rect{
		Min: pathkit.Pt(cursor.X-tol, cursor.Y-tol),
		Max: pathkit.Pt(cursor.X+tol, cursor.Y+tol),
	}
}

func testRect(r pathkit.Rect, filled bool, p pathkit.Point, tol float64) bool {
	if !r.Inset(-tol).Contains(p) {
		return false
	}
	if filled {
		return true
	}
	return !strictlyInside(r.Inset(tol), p)
}

// strictlyInside reports whether p is in r's interior. An inverted
// rectangle has no interior.
func strictlyInside(r pathkit.Rect, p pathkit.Point) bool {
	return p.X > r.Min.X && p.X < r.Max.X && p.Y > r.Min.Y && p.Y < r.Max.Y
}

func testEllipse(el *Ellipse, p pathkit.Point, tol float64) bool {
	rx, ry := math.Abs(el.RX), math.Abs(el.RY)
	d := p.Sub(pathkit.Pt(el.CX, el.CY))
	if ellipseTerm(d, rx+tol, ry+tol) > 1 {
		return false
	}
	if el.Filled {
		return true
	}
	if rx <= tol || ry <= tol {
		return true
	}
	return ellipseTerm(d, rx-tol, ry-tol) >= 1
}

// ellipseTerm is 1 on the outline of the axis-aligned ellipse with radii
// rx and ry centered at the origin, below 1 inside it.
func ellipseTerm(d pathkit.Point, rx, ry float64) float64 {
	x, y := d.X/rx, d.Y/ry
	return x*x + y*y
}

func testChain(pts []pathkit.Point, closed bool, p pathkit.Point, tol float64) bool {
	if len(pts) == 0 || !pointsBounds(pts).Intersects(window(p, tol)) {
		return false
	}
	if len(pts) == 1 {
		return pts[0].DistanceSquared(p) <= tol*tol
	}
	hit := false
	edges(pts, closed, func(l pathkit.Line) {
		if !hit && l.DistanceSquared(p) <= tol*tol {
			hit = true
		}
	})
	return hit
}

func polygonPath(pts []pathkit.Point) *pathkit.Path {
	return pathkit.BuildPath().Polygon(pts).Build()
}

func rectMarker(r pathkit.Rect, p pathkit.Point) pathkit.Point {
	col := third(p.X-r.Min.X, r.Width())
	row := third(p.Y-r.Min.Y, r.Height())
	x, y := anchor.FromSigns(col, row).Offset(r.Width(), r.Height())
	return r.Min.Add(pathkit.Pt(x, y))
}

// third maps an offset along an axis of the given length to -1, 0 or 1
// for the first, middle and last third.
func third(offset, length float64) int {
	if length <= 0 {
		return 0
	}
	switch f := offset / length; {
	case f < 1.0/3:
		return -1
	case f < 2.0/3:
		return 0
	default:
		return 1
	}
}

func ellipseMarker(el *Ellipse, p pathkit.Point) pathkit.Point {
	rx, ry := math.Abs(el.RX), math.Abs(el.RY)
	c := pathkit.Pt(el.CX, el.CY)
	d := p.Sub(c)
	if d.LengthSquared() == 0 {
		return pathkit.Pt(el.CX+rx, el.CY)
	}
	theta := math.Atan2(d.Y*rx, d.X*ry)
	return pathkit.Pt(el.CX+rx*math.Cos(theta), el.CY+ry*math.Sin(theta))
}

func chainMarker(pts []pathkit.Point, closed bool, p pathkit.Point, tol float64) pathkit.Point {
	nearest, best := pathkit.Point{}, math.Inf(1)
	for _, v := range pts {
		if d := v.DistanceSquared(p); d < best {
			nearest, best = v, d
		}
	}
	if best <= tol*tol || len(pts) == 1 {
		return nearest
	}

	best = math.Inf(1)
	edges(pts, closed, func(l pathkit.Line) {
		if d := l.DistanceSquared(p); d < best {
			nearest, best = l.Midpoint(), d
		}
	})
	return nearest
}

func pathMarker(m *pathkit.SegmentMap, p pathkit.Point) pathkit.Point {
	var (
		nearest pathkit.Point
		best    = math.Inf(1)
	)
	for _, seg := range m.Segments() {
		if d := seg.DistanceSquared(p); d < best {
			nearest, best = seg.Midpoint(), d
		}
	}
	if math.IsInf(best, 1) {
		return m.Bounds().Center()
	}
	return nearest
}

func nodeName(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name()
}
