package hittest

import (
	"math"

	"github.com/gogpu/pathkit"
)

// Node is a shape that can be hit-tested.
//
// The implementations are *Rect, *Ellipse, *Line, *Polyline, *Polygon and
// *PathNode. Nodes are compared by pointer identity.
type Node interface {
	// Name identifies the node in logs and results.
	Name() string
	// Bounds returns the node's axis-aligned bounding box.
	Bounds() pathkit.Rect

	isNode()
}

// Rect is a rectangle with its top-left corner at (X, Y), rotated by
// Rotation degrees about that corner.
type Rect struct {
	ID         string
	X, Y, W, H float64
	Rotation   float64
	Filled     bool
}

func (r *Rect) Name() string { return r.ID }

// Bounds returns the axis-aligned box around the rotated rectangle.
func (r *Rect) Bounds() pathkit.Rect {
	local, m := r.local(), r.frame()
	if m.IsIdentity() {
		return local
	}
	return pointsBounds([]pathkit.Point{
		m.TransformPoint(local.Min),
		m.TransformPoint(pathkit.Pt(local.Max.X, local.Min.Y)),
		m.TransformPoint(local.Max),
		m.TransformPoint(pathkit.Pt(local.Min.X, local.Max.Y)),
	})
}

// local returns the rectangle before rotation.
func (r *Rect) local() pathkit.Rect { return pathkit.RectXYWH(r.X, r.Y, r.W, r.H) }

// frame maps the unrotated rectangle to its rotated position.
func (r *Rect) frame() pathkit.Matrix {
	return pathkit.RotateAbout(r.Rotation*math.Pi/180, pathkit.Pt(r.X, r.Y))
}

func (*Rect) isNode() {}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	ID             string
	CX, CY, RX, RY float64
	Filled         bool
}

func (e *Ellipse) Name() string { return e.ID }

func (e *Ellipse) Bounds() pathkit.Rect {
	rx, ry := math.Abs(e.RX), math.Abs(e.RY)
	return pathkit.NewRect(pathkit.Pt(e.CX-rx, e.CY-ry), pathkit.Pt(e.CX+rx, e.CY+ry))
}

func (*Ellipse) isNode() {}

// Line is a single straight segment.
type Line struct {
	ID             string
	X1, Y1, X2, Y2 float64
}

func (l *Line) Name() string { return l.ID }

func (l *Line) Bounds() pathkit.Rect { return l.segment().BoundingBox() }

func (l *Line) segment() pathkit.Line {
	return pathkit.NewLine(pathkit.Pt(l.X1, l.Y1), pathkit.Pt(l.X2, l.Y2))
}

func (*Line) isNode() {}

// Polyline is an open chain of straight segments.
type Polyline struct {
	ID     string
	Points []pathkit.Point
}

func (p *Polyline) Name() string { return p.ID }

func (p *Polyline) Bounds() pathkit.Rect { return pointsBounds(p.Points) }

func (*Polyline) isNode() {}

// Polygon is a closed chain of straight segments.
type Polygon struct {
	ID     string
	Points []pathkit.Point
	Filled bool
}

func (p *Polygon) Name() string { return p.ID }

func (p *Polygon) Bounds() pathkit.Rect { return pointsBounds(p.Points) }

func (*Polygon) isNode() {}

// PathNode is an arbitrary path. Its segments are built through the
// engine's segment cache, so the path must not be modified while the
// node is in use; modifying it makes it a new cache entry.
type PathNode struct {
	ID     string
	Path   *pathkit.Path
	Filled bool
}

func (p *PathNode) Name() string { return p.ID }

// Bounds returns the path bounds, or an empty Rect for a nil path.
func (p *PathNode) Bounds() pathkit.Rect {
	if p.Path == nil {
		return pathkit.Rect{}
	}
	return p.Path.Bounds()
}

func (*PathNode) isNode() {}

func pointsBounds(pts []pathkit.Point) pathkit.Rect {
	if len(pts) == 0 {
		return pathkit.Rect{}
	}
	r := pathkit.Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r = r.Union(pathkit.Rect{Min: p, Max: p})
	}
	return r
}

// edges calls fn for each segment of the chain, including the closing
// segment when closed is set.
func edges(pts []pathkit.Point, closed bool, fn func(pathkit.Line)) {
	for i := 1; i < len(pts); i++ {
		fn(pathkit.NewLine(pts[i-1], pts[i]))
	}
	if closed && len(pts) > 2 {
		fn(pathkit.NewLine(pts[len(pts)-1], pts[0]))
	}
}
