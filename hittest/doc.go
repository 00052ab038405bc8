// Package hittest decides which shape is under the pointer.
//
// An Engine tests shape nodes against a cursor with a fixed highlight
// tolerance. Filled shapes hit by containment; stroke-only shapes hit
// within tolerance of their outline, so the inside of an unfilled
// rectangle is not a hit. When several nodes hit, BestMatch picks the one
// with the smallest bounding box, the most specific shape under the
// pointer.
//
// MarkerLocation places a selection marker on a hit node: the nearest
// anchor point on rectangles, the nearest vertex or segment midpoint on
// polylines and paths.
//
// Pointer sessions are modelled by the pure Transition function over
// Idle, Highlighted and Selected states. A Tracker binds an Engine and
// a node list and feeds pointer events through it.
//
//	engine := hittest.NewEngine(hittest.WithTolerance(5))
//	nodes := []hittest.Node{
//	    &hittest.Rect{ID: "frame", W: 100, H: 100},
//	    &hittest.Rect{ID: "button", X: 10, Y: 10, W: 10, H: 10, Filled: true},
//	}
//	if n, ok := engine.BestMatch(nodes, pathkit.Pt(15, 15)); ok {
//	    fmt.Println(n.Name()) // button
//	}
//
// Engines and trackers are not safe for concurrent use.
package hittest
