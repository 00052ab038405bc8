// Package anchor models the nine reference points of a bounding box and
// the resize math that keeps one of them fixed while a handle is dragged.
package anchor

import (
	"fmt"
	"strings"
)

// Anchor is one of nine symbolic positions on a box: the four corners,
// the four edge midpoints and the center.
type Anchor int

// Anchors in row-major order, top row first.
const (
	TopLeft Anchor = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

var names = [...]string{
	TopLeft:     "top-left",
	Top:         "top",
	TopRight:    "top-right",
	Left:        "left",
	Center:      "center",
	Right:       "right",
	BottomLeft:  "bottom-left",
	Bottom:      "bottom",
	BottomRight: "bottom-right",
}

// All returns the nine anchors in row-major order.
func All() []Anchor {
	return []Anchor{TopLeft, Top, TopRight, Left, Center, Right, BottomLeft, Bottom, BottomRight}
}

// Valid reports whether a is one of the nine anchors.
func (a Anchor) Valid() bool {
	return a >= TopLeft && a <= BottomRight
}

// Signs returns the horizontal and vertical sign of a: -1 for left/top,
// 0 for center, 1 for right/bottom.
func (a Anchor) Signs() (h, v int) {
	return int(a)%3 - 1, int(a)/3 - 1
}

// FromSigns returns the anchor with the given signs. Values are clamped
// to [-1, 1], so any positive number means right or bottom.
func FromSigns(h, v int) Anchor {
	return Anchor((clampSign(v)+1)*3 + clampSign(h) + 1)
}

func clampSign(s int) int {
	switch {
	case s < 0:
		return -1
	case s > 0:
		return 1
	}
	return 0
}

// MirrorH returns a reflected across the vertical center line.
func (a Anchor) MirrorH() Anchor {
	h, v := a.Signs()
	return FromSigns(-h, v)
}

// MirrorV returns a reflected across the horizontal center line.
func (a Anchor) MirrorV() Anchor {
	h, v := a.Signs()
	return FromSigns(h, -v)
}

// Opposite returns a reflected through the center.
func (a Anchor) Opposite() Anchor {
	h, v := a.Signs()
	return FromSigns(-h, -v)
}

// Offset returns the position of a within a box of the given size,
// relative to the box's top-left corner.
func (a Anchor) Offset(width, height float64) (x, y float64) {
	h, v := a.Signs()
	return float64(h+1) / 2 * width, float64(v+1) / 2 * height
}

// String returns the kebab-case name, e.g. "bottom-right".
func (a Anchor) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return names[a]
}

// ParseAnchor converts a name produced by String back into an Anchor.
// Matching ignores case, and underscores or spaces may replace hyphens.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for i, n := range names {
		if n == norm {
			return Anchor(i), nil
		}
	}
	return 0, fmt.Errorf("anchor: unknown anchor %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("anchor: invalid anchor %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
