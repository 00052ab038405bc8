package anchor

import (
	"math"

	"github.com/gogpu/pathkit"
)

// Size is a box's width and height.
type Size struct {
	Width, Height float64
}

// Delta is an incremental change to apply to a shape's stored location
// (its unrotated top-left corner) and size.
type Delta struct {
	DX, DY          float64
	DWidth, DHeight float64
}

// Resizer turns pointer drags on a resize handle into location and size
// deltas for one resize gesture.
//
// The shape is described by its top-left location, its size and a
// rotation about that location. The resizer keeps the anchor point fixed
// in parent coordinates. When a drag pushes the width or height through
// zero, the anchor flips to its mirror on that axis and the handle's sign
// is inverted, so continued dragging grows the shape from the other side.
//
// A Resizer tracks the size it has produced; each Apply continues from
// the previous one.
type Resizer struct {
	handleH, handleV int
	anchor           Anchor
	rotation         pathkit.Matrix
	inverse          pathkit.Matrix
	dragScale        float64
	size             Size
}

// NewResizer creates a resizer for dragging handle on a shape anchored at
// anchor. rotationDeg is the shape's rotation in degrees. dragScale
// multiplies every drag vector, for example to undo a view zoom; zero
// means 1.
func NewResizer(handle, anchor Anchor, rotationDeg, dragScale float64, size Size) *Resizer {
	if dragScale == 0 {
		dragScale = 1
	}
	h, v := handle.Signs()
	rot := pathkit.Rotate(rotationDeg * math.Pi / 180)
	return &Resizer{
		handleH:   h,
		handleV:   v,
		anchor:    anchor,
		rotation:  rot,
		inverse:   rot.Invert(),
		dragScale: dragScale,
		size:      size,
	}
}

// Anchor returns the current anchor, which changes when the shape flips.
func (r *Resizer) Anchor() Anchor { return r.anchor }

// Handle returns the handle position in the current orientation.
func (r *Resizer) Handle() Anchor { return FromSigns(r.handleH, r.handleV) }

// Size returns the size after the last Apply.
func (r *Resizer) Size() Size { return r.size }

// Apply converts one drag step from start to end, in parent coordinates,
// into a Delta.
func (r *Resizer) Apply(start, end pathkit.Point) Delta {
	local := r.inverse.TransformVector(end.Sub(start).Mul(r.dragScale))
	anchorH, anchorV := r.anchor.Signs()

	x, w, flipH := resizeAxis(local.X, r.size.Width, r.handleH, anchorH)
	y, h, flipV := resizeAxis(local.Y, r.size.Height, r.handleV, anchorV)

	if flipH {
		r.handleH = -r.handleH
		r.anchor = r.anchor.MirrorH()
	}
	if flipV {
		r.handleV = -r.handleV
		r.anchor = r.anchor.MirrorV()
	}
	if flipH || flipV {
		pathkit.Logger().Debug("anchor: resize flipped",
			"horizontal", flipH, "vertical", flipV, "anchor", r.anchor.String())
	}

	offset := r.rotation.TransformVector(pathkit.Pt(x, y))
	d := Delta{
		DX:      offset.X,
		DY:      offset.Y,
		DWidth:  w - r.size.Width,
		DHeight: h - r.size.Height,
	}
	r.size = Size{Width: w, Height: h}
	return d
}

// resizeAxis resizes one axis. delta is the local drag along the axis,
// length the current extent, handle and anchor the signs on this axis.
// It returns the new origin relative to the old one, the new extent and
// whether the extent crossed zero.
func resizeAxis(delta, length float64, handle, anchor int) (origin, newLength float64, flipped bool) {
	factor := 1.0
	if anchor == 0 {
		// A centered anchor grows both sides at once.
		factor = 2
	}
	newLength = length + float64(handle)*delta*factor

	fixed := float64(anchor+1) / 2 * length
	if newLength < 0 {
		newLength = -newLength
		anchor = -anchor
		flipped = true
	}
	origin = fixed - float64(anchor+1)/2*newLength
	return origin, newLength, flipped
}
