package pathkit

import "sync/atomic"

// PathElement represents a single element in a path.
// All coordinates are absolute.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// ArcTo draws an elliptical arc in SVG endpoint form.
// XAxisRotation is in degrees, as written in path data.
type ArcTo struct {
	RX, RY        float64
	XAxisRotation float64
	LargeArc      bool
	Sweep         bool
	Point         Point
}

func (ArcTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// PathID is a stable identity for a path's element sequence.
// IDs are assigned from a process-wide counter and never reused.
type PathID uint64

var lastPathID atomic.Uint64

func nextPathID() PathID {
	return PathID(lastPathID.Add(1))
}

// Path represents a vector path.
//
// A path's identity (ID) keys the segment cache. Every mutating method drops
// the identity, so a path that changes after being cached is looked up under
// a fresh ID and never sees stale segments.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
	id       PathID
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// ID returns the path's identity, assigning one on first use.
func (p *Path) ID() PathID {
	if p.id == 0 {
		p.id = nextPathID()
	}
	return p.id
}

func (p *Path) push(e PathElement, pt Point) {
	p.elements = append(p.elements, e)
	p.current = pt
	p.id = 0
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.push(MoveTo{Point: pt}, pt)
	p.start = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.push(LineTo{Point: pt}, pt)
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.push(QuadTo{Control: Pt(cx, cy), Point: pt}, pt)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.push(CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	}, pt)
}

// ArcTo draws an elliptical arc from the current point to (x, y).
// rotation is the x-axis rotation in degrees.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	pt := Pt(x, y)
	p.push(ArcTo{
		RX: rx, RY: ry,
		XAxisRotation: rotation,
		LargeArc:      largeArc,
		Sweep:         sweep,
		Point:         pt,
	}, pt)
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.push(Close{}, p.start)
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.id = 0
}

// Elements returns the path elements.
// The returned slice must not be modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Len returns the number of elements in the path.
func (p *Path) Len() int {
	return len(p.elements)
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint returns true if the path has a current point.
func (p *Path) HasCurrentPoint() bool {
	return len(p.elements) > 0
}

// Validate checks the structural rules segment construction relies on.
// It returns a *StructuralError when the path does not begin with a MoveTo.
func (p *Path) Validate() error {
	if len(p.elements) == 0 {
		return nil
	}
	if _, ok := p.elements[0].(MoveTo); !ok {
		return &StructuralError{Index: 0, Err: ErrNoMoveTo}
	}
	return nil
}

// Clone creates a deep copy of the path with a new identity.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	return result
}
