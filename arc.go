package pathkit

import "math"

// arcAngleEpsilon absorbs rounding when a point sits exactly on an arc
// endpoint.
const arcAngleEpsilon = 1e-9

// ArcSegment is an elliptical arc converted from SVG endpoint form to
// center form on construction.
//
// A zero radius, or coincident endpoints, degrade the arc to a straight
// chord, matching SVG rendering rules.
type ArcSegment struct {
	start, end Point
	params     ArcTo

	center Point
	rx, ry float64 // radii after scaling to fit the chord
	phi    float64 // x-axis rotation in radians
	theta  float64 // start angle
	delta  float64 // signed extent; its sign follows the sweep flag
	mid    Point
	chord  bool // degenerate arc, treated as a line

	// frame maps the unit circle onto the ellipse; inverse maps back.
	frame, inverse Matrix
}

// newArcSegment converts an ArcTo starting at start.
func newArcSegment(start Point, a ArcTo) *ArcSegment {
	s := &ArcSegment{
		start:  start,
		end:    a.Point,
		params: a,
		phi:    a.XAxisRotation * math.Pi / 180,
		rx:     math.Abs(a.RX),
		ry:     math.Abs(a.RY),
	}
	if s.rx == 0 || s.ry == 0 || start == a.Point {
		s.chord = true
		s.mid = start.Mid(a.Point)
		return s
	}

	rot := Rotate(s.phi)

	// Half chord in the ellipse's own frame.
	h := Rotate(-s.phi).TransformVector(start.Sub(a.Point).Div(2))
	hx2, hy2 := h.X*h.X, h.Y*h.Y

	if lambda := hx2/(s.rx*s.rx) + hy2/(s.ry*s.ry); lambda > 1 {
		scale := math.Sqrt(lambda)
		Logger().Debug("arc: radii scaled to fit chord",
			"rx", s.rx, "ry", s.ry, "scale", scale)
		s.rx *= scale
		s.ry *= scale
	}
	rx2, ry2 := s.rx*s.rx, s.ry*s.ry

	radicand := rx2*ry2 - rx2*hy2 - ry2*hx2
	var coef float64
	if radicand < 0 {
		Logger().Debug("arc: negative radicand clamped", "radicand", radicand)
	} else {
		coef = math.Sqrt(radicand / (rx2*hy2 + ry2*hx2))
	}
	if a.LargeArc == a.Sweep {
		coef = -coef
	}

	c := Pt(coef*s.rx/s.ry*h.Y, -coef*s.ry/s.rx*h.X)
	s.center = rot.TransformPoint(c).Add(start.Mid(a.Point))
	s.frame = Translate(s.center.X, s.center.Y).Multiply(rot).Multiply(Scale(s.rx, s.ry))
	s.inverse = Scale(1/s.rx, 1/s.ry).Multiply(Rotate(-s.phi)).Multiply(Translate(-s.center.X, -s.center.Y))

	u := Pt((h.X-c.X)/s.rx, (h.Y-c.Y)/s.ry)
	v := Pt((-h.X-c.X)/s.rx, (-h.Y-c.Y)/s.ry)
	s.theta = vectorAngle(Pt(1, 0), u)
	s.delta = vectorAngle(u, v)
	if !a.Sweep && s.delta > 0 {
		s.delta -= 2 * math.Pi
	} else if a.Sweep && s.delta < 0 {
		s.delta += 2 * math.Pi
	}

	s.mid = s.pointAt(s.theta + s.delta/2)
	return s
}

// vectorAngle returns the signed angle from u to v.
func vectorAngle(u, v Point) float64 {
	dot := u.Dot(v) / (u.Length() * v.Length())
	dot = math.Max(-1, math.Min(1, dot))
	a := math.Acos(dot)
	if u.Cross(v) < 0 {
		return -a
	}
	return a
}

// pointAt returns the point on the ellipse at parametric angle t.
func (s *ArcSegment) pointAt(t float64) Point {
	sin, cos := math.Sincos(t)
	return s.frame.TransformPoint(Pt(cos, sin))
}

// inSweep reports whether parametric angle t lies on the swept range.
func (s *ArcSegment) inSweep(t float64) bool {
	d := math.Mod(t-s.theta, 2*math.Pi)
	if s.delta >= 0 {
		if d < 0 {
			d += 2 * math.Pi
		}
		if d > 2*math.Pi-arcAngleEpsilon {
			d = 0
		}
		return d <= s.delta+arcAngleEpsilon
	}
	if d > 0 {
		d -= 2 * math.Pi
	}
	if d < -2*math.Pi+arcAngleEpsilon {
		d = 0
	}
	return d >= s.delta-arcAngleEpsilon
}

// Start returns the arc's start point.
func (s *ArcSegment) Start() Point { return s.start }

// End returns the arc's end point.
func (s *ArcSegment) End() Point { return s.end }

// Params returns the endpoint parameters the arc was built from.
func (s *ArcSegment) Params() ArcTo { return s.params }

// Center returns the ellipse center.
func (s *ArcSegment) Center() Point { return s.center }

// Radii returns the effective radii, scaled up when the requested radii
// were too small to span the endpoints.
func (s *ArcSegment) Radii() (rx, ry float64) { return s.rx, s.ry }

// Rotation returns the x-axis rotation in radians.
func (s *ArcSegment) Rotation() float64 { return s.phi }

// StartAngle returns the parametric start angle in radians.
func (s *ArcSegment) StartAngle() float64 { return s.theta }

// EndAngle returns the parametric end angle in radians.
func (s *ArcSegment) EndAngle() float64 { return s.theta + s.delta }

// Extent returns the signed angular extent; positive for sweep=1.
func (s *ArcSegment) Extent() float64 { return s.delta }

// IsChord reports whether the arc degraded to a straight line.
func (s *ArcSegment) IsChord() bool { return s.chord }

// Midpoint returns the point at the bisecting angle of the sweep.
func (s *ArcSegment) Midpoint() Point { return s.mid }

// DistanceSquared returns the squared distance from p to the ellipse
// point at p's own parametric angle about the center. Points whose angle
// falls outside the swept range report +Inf.
func (s *ArcSegment) DistanceSquared(p Point) float64 {
	if s.chord {
		return NewLine(s.start, s.end).DistanceSquared(p)
	}
	u := s.inverse.TransformPoint(p)
	t := math.Atan2(u.Y, u.X)
	if !s.inSweep(t) {
		return math.Inf(1)
	}
	return s.pointAt(t).DistanceSquared(p)
}

// Bounds returns the tight bounding box of the swept arc.
func (s *ArcSegment) Bounds() Rect {
	r := NewRect(s.start, s.end)
	if s.chord {
		return r
	}
	sin, cos := math.Sincos(s.phi)
	tx := math.Atan2(-s.ry*sin, s.rx*cos)
	ty := math.Atan2(s.ry*cos, s.rx*sin)
	for _, t := range [...]float64{tx, tx + math.Pi, ty, ty + math.Pi} {
		if s.inSweep(t) {
			r = r.expand(s.pointAt(t))
		}
	}
	return r
}

// flatten emits points along the arc, excluding the start, spaced so
// no chord deviates from the ellipse by more than tolerance.
func (s *ArcSegment) flatten(tolerance float64, fn func(Point)) {
	if s.chord {
		fn(s.end)
		return
	}
	r := math.Max(s.rx, s.ry)
	n := 1
	if tolerance < r {
		step := 2 * math.Acos(1-tolerance/r)
		n = int(math.Ceil(math.Abs(s.delta) / step))
	}
	n = max(n, 1)
	for i := 1; i < n; i++ {
		fn(s.pointAt(s.theta + s.delta*float64(i)/float64(n)))
	}
	fn(s.end)
}
