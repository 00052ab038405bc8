// Package pathkit provides vector path geometry and hit-testing for Go.
//
// # Overview
//
// pathkit parses SVG-style path data into typed segments and answers
// geometric queries against them: distance from a cursor to a line, a
// Bezier curve or an elliptical arc, segment midpoints, bounds and
// containment. It is the geometric core behind interactive editors that
// highlight, select and resize shapes under the pointer.
//
// # Quick Start
//
//	import "github.com/gogpu/pathkit"
//
//	p, err := pathkit.Parse("M0,0 L10,0 L10,10 Z")
//	if err != nil {
//	    return err
//	}
//
//	cache := pathkit.NewSegmentCache(64, pathkit.DefaultSolverOptions())
//	segs, _ := cache.GetOrCreate(p)
//	if i, seg, ok := segs.FirstWithin(pathkit.Pt(10, 5), 1); ok {
//	    fmt.Println(i, seg.Midpoint()) // 2 {10 5}
//	}
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Point, Matrix, Rect, Line, QuadBez, CubicBez
//   - Paths: Path, PathElement, PathBuilder, Parse, ParsePoints
//   - Segments: Segment variants, the arc converter and the Bezier
//     nearest-point solver
//   - Caching: SegmentMap and the LRU SegmentCache
//   - Sub-packages: hittest (shape hit-testing and pointer state),
//     anchor (nine-point anchors and resize math), scene (YAML and TOML
//     scene documents)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians unless a name says degrees; path data arc
//     rotation is in degrees
//
// # Concurrency
//
// Parsing and geometry are pure. SegmentCache and the hit-test engine hold
// mutable state and must be confined to one goroutine.
package pathkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
