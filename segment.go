package pathkit

import (
	"fmt"
	"math"
)

// Segment is one piece of path geometry between two absolute points.
//
// The set of implementations is closed: MoveSegment, LineSegment,
// QuadSegment, CubicSegment, *ArcSegment and CloseSegment.
type Segment interface {
	// Start returns the absolute start point.
	Start() Point
	// End returns the absolute end point.
	End() Point
	// Midpoint returns a representative point halfway along the segment.
	Midpoint() Point
	// DistanceSquared returns the squared distance from p to the segment,
	// or +Inf when the segment cannot match p.
	DistanceSquared(p Point) float64
	// Bounds returns the axis-aligned bounding box of the segment.
	Bounds() Rect

	isSegment()
}

// MoveSegment starts a subpath. It has no extent and matches no point.
type MoveSegment struct {
	Point Point
}

func (s MoveSegment) Start() Point                  { return s.Point }
func (s MoveSegment) End() Point                    { return s.Point }
func (s MoveSegment) Midpoint() Point               { return s.Point }
func (s MoveSegment) DistanceSquared(Point) float64 { return math.Inf(1) }
func (s MoveSegment) Bounds() Rect                  { return Rect{Min: s.Point, Max: s.Point} }
func (MoveSegment) isSegment()                      {}

// LineSegment is a straight line.
type LineSegment struct {
	Line Line
}

func (s LineSegment) Start() Point                    { return s.Line.P0 }
func (s LineSegment) End() Point                      { return s.Line.P1 }
func (s LineSegment) Midpoint() Point                 { return s.Line.Midpoint() }
func (s LineSegment) DistanceSquared(p Point) float64 { return s.Line.DistanceSquared(p) }
func (s LineSegment) Bounds() Rect                    { return s.Line.BoundingBox() }
func (LineSegment) isSegment()                        {}

// CloseSegment is the straight line from the current point back to the
// start of its subpath.
type CloseSegment struct {
	Line Line
}

func (s CloseSegment) Start() Point                    { return s.Line.P0 }
func (s CloseSegment) End() Point                      { return s.Line.P1 }
func (s CloseSegment) Midpoint() Point                 { return s.Line.Midpoint() }
func (s CloseSegment) DistanceSquared(p Point) float64 { return s.Line.DistanceSquared(p) }
func (s CloseSegment) Bounds() Rect                    { return s.Line.BoundingBox() }
func (CloseSegment) isSegment()                        {}

// QuadSegment is a quadratic Bezier curve. Distance queries use the
// numeric nearest-point solver.
type QuadSegment struct {
	Curve  QuadBez
	Solver SolverOptions
}

func (s QuadSegment) Start() Point    { return s.Curve.P0 }
func (s QuadSegment) End() Point      { return s.Curve.P2 }
func (s QuadSegment) Midpoint() Point { return s.Curve.Midpoint() }
func (s QuadSegment) DistanceSquared(p Point) float64 {
	return s.Curve.DistanceSquared(p, s.Solver)
}
func (s QuadSegment) Bounds() Rect { return s.Curve.BoundingBox() }
func (QuadSegment) isSegment()     {}

// CubicSegment is a cubic Bezier curve. Distance queries use the
// numeric nearest-point solver.
type CubicSegment struct {
	Curve  CubicBez
	Solver SolverOptions
}

func (s CubicSegment) Start() Point    { return s.Curve.P0 }
func (s CubicSegment) End() Point      { return s.Curve.P3 }
func (s CubicSegment) Midpoint() Point { return s.Curve.Midpoint() }
func (s CubicSegment) DistanceSquared(p Point) float64 {
	return s.Curve.DistanceSquared(p, s.Solver)
}
func (s CubicSegment) Bounds() Rect { return s.Curve.BoundingBox() }
func (CubicSegment) isSegment()     {}

func (*ArcSegment) isSegment() {}

// NewSegment builds the segment for elem. start is the current point
// before elem and subpathStart the start of the enclosing subpath, which
// a Close returns to. Element types outside the PathElement set fail with
// ErrUnknownElement.
func NewSegment(elem PathElement, start, subpathStart Point, opts SolverOptions) (Segment, error) {
	switch e := elem.(type) {
	case MoveTo:
		return MoveSegment{Point: e.Point}, nil
	case LineTo:
		return LineSegment{Line: NewLine(start, e.Point)}, nil
	case QuadTo:
		return QuadSegment{Curve: NewQuadBez(start, e.Control, e.Point), Solver: opts}, nil
	case CubicTo:
		return CubicSegment{Curve: NewCubicBez(start, e.Control1, e.Control2, e.Point), Solver: opts}, nil
	case ArcTo:
		return newArcSegment(start, e), nil
	case Close:
		return CloseSegment{Line: NewLine(start, subpathStart)}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownElement, elem)
	}
}
