package hittest

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pathkit"
)

func assertPoint(t *testing.T, want, got pathkit.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestBestMatchPrefersSmallestArea(t *testing.T) {
	e := NewEngine()
	big := &Rect{ID: "big", W: 100, H: 100, Filled: true}
	small := &Rect{ID: "small", X: 10, Y: 10, W: 10, H: 10, Filled: true}

	for _, nodes := range [][]Node{{big, small}, {small, big}} {
		got, ok := e.BestMatch(nodes, pathkit.Pt(15, 15))
		require.True(t, ok)
		assert.Same(t, small, got)
	}

	got, ok := e.BestMatch([]Node{big, small}, pathkit.Pt(60, 60))
	require.True(t, ok)
	assert.Same(t, big, got)
}

func TestBestMatchTieKeepsFirst(t *testing.T) {
	e := NewEngine()
	a := &Rect{ID: "a", W: 10, H: 10, Filled: true}
	b := &Rect{ID: "b", X: 2, Y: 2, W: 10, H: 10, Filled: true}

	got, ok := e.BestMatch([]Node{a, b}, pathkit.Pt(5, 5))
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = e.BestMatch([]Node{b, a}, pathkit.Pt(5, 5))
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestBestMatchNone(t *testing.T) {
	e := NewEngine()
	got, ok := e.BestMatch([]Node{&Rect{W: 10, H: 10}}, pathkit.Pt(50, 50))
	assert.False(t, ok)
	assert.Nil(t, got)

	_, ok = e.BestMatch(nil, pathkit.Pt(0, 0))
	assert.False(t, ok)
}

func TestHitAll(t *testing.T) {
	e := NewEngine()
	frame := &Rect{ID: "frame", W: 100, H: 100}
	button := &Rect{ID: "button", X: 10, Y: 10, W: 10, H: 10, Filled: true}
	edge := &Line{ID: "edge", X1: 0, Y1: 12, X2: 100, Y2: 12}

	hits := e.HitAll([]Node{frame, button, edge}, pathkit.Pt(15, 15))
	assert.Equal(t, []Node{button, edge}, hits)

	hits = e.HitAll([]Node{frame, button, edge}, pathkit.Pt(2, 50))
	assert.Equal(t, []Node{frame}, hits)
}

func TestUnfilledRect(t *testing.T) {
	e := NewEngine()
	r := &Rect{ID: "r", W: 100, H: 100}

	tests := []struct {
		name   string
		cursor pathkit.Point
		want   bool
	}{
		{"center", pathkit.Pt(50, 50), false},
		{"just inside band", pathkit.Pt(6, 50), false},
		{"inside near left edge", pathkit.Pt(2, 50), true},
		{"outside near left edge", pathkit.Pt(-4, 50), true},
		{"on top edge", pathkit.Pt(50, 0), true},
		{"below bottom edge", pathkit.Pt(50, 104), true},
		{"far below bottom edge", pathkit.Pt(50, 106), false},
		{"outside corner", pathkit.Pt(-3, -3), true},
		{"far outside", pathkit.Pt(-6, 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Test(r, tt.cursor))
		})
	}
}

func TestFilledRect(t *testing.T) {
	e := NewEngine()
	r := &Rect{ID: "r", W: 100, H: 100, Filled: true}

	assert.True(t, e.Test(r, pathkit.Pt(50, 50)))
	assert.True(t, e.Test(r, pathkit.Pt(-4, 50)))
	assert.False(t, e.Test(r, pathkit.Pt(-6, 50)))
}

func TestSmallUnfilledRectIsAllBand(t *testing.T) {
	e := NewEngine()
	r := &Rect{ID: "r", W: 8, H: 8}
	assert.True(t, e.Test(r, pathkit.Pt(4, 4)))
}

func TestRectMarkerThirds(t *testing.T) {
	e := NewEngine()
	r := &Rect{ID: "r", W: 90, H: 60, Filled: true}

	tests := []struct {
		cursor pathkit.Point
		want   pathkit.Point
	}{
		{pathkit.Pt(2, 2), pathkit.Pt(0, 0)},
		{pathkit.Pt(45, 1), pathkit.Pt(45, 0)},
		{pathkit.Pt(88, 5), pathkit.Pt(90, 0)},
		{pathkit.Pt(5, 30), pathkit.Pt(0, 30)},
		{pathkit.Pt(45, 30), pathkit.Pt(45, 30)},
		{pathkit.Pt(88, 30), pathkit.Pt(90, 30)},
		{pathkit.Pt(20, 59), pathkit.Pt(0, 60)},
		{pathkit.Pt(89, 59), pathkit.Pt(90, 60)},
		{pathkit.Pt(93, 63), pathkit.Pt(90, 60)},
	}
	for _, tt := range tests {
		got, err := e.MarkerLocation(r, tt.cursor)
		require.NoError(t, err, "cursor %v", tt.cursor)
		assertPoint(t, tt.want, got)
	}
}

func TestRectMarkerOffset(t *testing.T) {
	e := NewEngine()
	r := &Rect{ID: "r", X: 100, Y: 200, W: 30, H: 30}

	got, err := e.MarkerLocation(r, pathkit.Pt(131, 201))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(130, 200), got)
}

func TestRotatedRect(t *testing.T) {
	e := NewEngine()
	bar := &Rect{ID: "bar", W: 100, H: 10, Rotation: 90, Filled: true}

	assert.True(t, e.Test(bar, pathkit.Pt(-5, 50)))
	assert.False(t, e.Test(bar, pathkit.Pt(50, 5)))

	b := bar.Bounds()
	assertPoint(t, pathkit.Pt(-10, 0), b.Min)
	assertPoint(t, pathkit.Pt(0, 100), b.Max)

	// The far end of the bar, measured along its own axes.
	m, err := e.MarkerLocation(bar, pathkit.Pt(-5, 95))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(-5, 100), m)

	_, err = e.MarkerLocation(bar, pathkit.Pt(50, 5))
	assert.ErrorIs(t, err, ErrNoHit)
}

func TestUnrotatedRectBounds(t *testing.T) {
	r := &Rect{X: 3, Y: 4, W: 10, H: 5}
	assert.Equal(t, pathkit.RectXYWH(3, 4, 10, 5), r.Bounds())
}

func TestMarkerLocationWithoutHit(t *testing.T) {
	e := NewEngine()
	r := &Rect{ID: "r", W: 100, H: 100}

	_, err := e.MarkerLocation(r, pathkit.Pt(50, 50))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoHit))
	assert.Contains(t, err.Error(), `"r"`)
}

func TestLine(t *testing.T) {
	e := NewEngine()
	l := &Line{ID: "l", X1: 0, Y1: 0, X2: 10, Y2: 0}

	assert.True(t, e.Test(l, pathkit.Pt(5, 4)))
	assert.True(t, e.Test(l, pathkit.Pt(13, 0)))
	assert.False(t, e.Test(l, pathkit.Pt(5, 6)))
	assert.False(t, e.Test(l, pathkit.Pt(16, 0)))

	got, err := e.MarkerLocation(l, pathkit.Pt(1, 1))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(5, 0), got)
}

func TestPolyline(t *testing.T) {
	pts := []pathkit.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	p := &Polyline{ID: "p", Points: pts}

	e := NewEngine()
	assert.True(t, e.Test(p, pathkit.Pt(10, 5)))
	assert.True(t, e.Test(p, pathkit.Pt(5, -4)))
	assert.False(t, e.Test(p, pathkit.Pt(50, 50)))
	// Far from every segment but inside the bounding box.
	assert.False(t, e.Test(&Polyline{Points: []pathkit.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}},
		pathkit.Pt(20, 80)))

	got, err := e.MarkerLocation(p, pathkit.Pt(1, 1))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(0, 0), got)

	narrow := NewEngine(WithTolerance(3))
	got, err = narrow.MarkerLocation(p, pathkit.Pt(11, 5))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(10, 5), got)
}

func TestSinglePointPolyline(t *testing.T) {
	e := NewEngine()
	p := &Polyline{ID: "dot", Points: []pathkit.Point{{X: 3, Y: 3}}}

	assert.True(t, e.Test(p, pathkit.Pt(6, 6)))
	assert.False(t, e.Test(p, pathkit.Pt(8, 8)))
	got, err := e.MarkerLocation(p, pathkit.Pt(6, 6))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(3, 3), got)

	assert.False(t, e.Test(&Polyline{ID: "empty"}, pathkit.Pt(0, 0)))
}

func TestPolygon(t *testing.T) {
	pts := []pathkit.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 20}}
	e := NewEngine()

	filled := &Polygon{ID: "filled", Points: pts, Filled: true}
	outline := &Polygon{ID: "outline", Points: pts}
	open := &Polyline{ID: "open", Points: pts}

	assert.True(t, e.Test(filled, pathkit.Pt(6, 6)))
	assert.False(t, e.Test(outline, pathkit.Pt(6, 6)))

	// Near the closing edge only.
	assert.True(t, e.Test(outline, pathkit.Pt(-1, 10)))
	assert.False(t, e.Test(open, pathkit.Pt(-1, 10)))

	narrow := NewEngine(WithTolerance(2))
	got, err := narrow.MarkerLocation(outline, pathkit.Pt(-1, 10))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(0, 10), got)
}

func TestEllipse(t *testing.T) {
	e := NewEngine()
	ring := &Ellipse{ID: "ring", CX: 50, CY: 50, RX: 20, RY: 10}
	disk := &Ellipse{ID: "disk", CX: 50, CY: 50, RX: 20, RY: 10, Filled: true}

	assert.False(t, e.Test(ring, pathkit.Pt(50, 50)))
	assert.True(t, e.Test(disk, pathkit.Pt(50, 50)))

	for _, p := range []pathkit.Point{{X: 70, Y: 50}, {X: 74, Y: 50}, {X: 67, Y: 50}, {X: 50, Y: 61}} {
		assert.True(t, e.Test(ring, p), "%v", p)
	}
	assert.False(t, e.Test(ring, pathkit.Pt(76, 50)))
	assert.False(t, e.Test(disk, pathkit.Pt(50, 66)))

	got, err := e.MarkerLocation(ring, pathkit.Pt(72, 50))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(70, 50), got)

	got, err = e.MarkerLocation(ring, pathkit.Pt(50, 61))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(50, 60), got)

	got, err = e.MarkerLocation(disk, pathkit.Pt(50, 50))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(70, 50), got)
}

func TestPathNode(t *testing.T) {
	p := pathkit.MustParse("M0,0 L10,0 L10,10 Z")
	e := NewEngine()
	n := &PathNode{ID: "tri", Path: p}

	assert.True(t, e.Test(n, pathkit.Pt(10, 5)))
	got, err := e.MarkerLocation(n, pathkit.Pt(10, 5))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(10, 5), got)

	assert.False(t, e.Test(n, pathkit.Pt(30, 30)))

	stats := e.CacheStats()
	assert.Equal(t, 1, stats.Len)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.GreaterOrEqual(t, stats.Hits, uint64(2))
}

func TestPathNodeFill(t *testing.T) {
	p := pathkit.MustParse("M0,0 L10,0 L10,10 Z")
	e := NewEngine(WithTolerance(1))

	assert.False(t, e.Test(&PathNode{ID: "stroke", Path: p}, pathkit.Pt(8, 3)))
	assert.True(t, e.Test(&PathNode{ID: "fill", Path: p, Filled: true}, pathkit.Pt(8, 3)))
}

func TestPathNodeArc(t *testing.T) {
	p := pathkit.MustParse("M10,0 A10,10 0 0,1 -10,0")
	e := NewEngine()
	n := &PathNode{ID: "arc", Path: p}

	assert.True(t, e.Test(n, pathkit.Pt(0, 11)))
	got, err := e.MarkerLocation(n, pathkit.Pt(0, 11))
	require.NoError(t, err)
	assertPoint(t, pathkit.Pt(0, 10), got)
}

func TestPathNodeInvalidPath(t *testing.T) {
	p := pathkit.NewPath()
	p.LineTo(1, 1)
	e := NewEngine()
	n := &PathNode{ID: "bad", Path: p}

	assert.False(t, e.Test(n, pathkit.Pt(1, 1)))

	_, err := e.MarkerLocation(n, pathkit.Pt(1, 1))
	var se *pathkit.StructuralError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, pathkit.ErrNoMoveTo)

	assert.False(t, e.Test(&PathNode{ID: "nil"}, pathkit.Pt(0, 0)))
}

func TestPathNodeWithoutPath(t *testing.T) {
	e := NewEngine()
	n := &PathNode{ID: "empty"}

	assert.Equal(t, pathkit.Rect{}, n.Bounds())
	assert.False(t, e.Test(n, pathkit.Pt(0, 0)))
	_, ok := e.BestMatch([]Node{n}, pathkit.Pt(0, 0))
	assert.False(t, ok)
	_, err := e.MarkerLocation(n, pathkit.Pt(0, 0))
	assert.ErrorIs(t, err, ErrNoHit)
}

func TestEngineOptions(t *testing.T) {
	assert.Equal(t, DefaultTolerance, NewEngine().Tolerance())
	assert.Equal(t, DefaultTolerance, NewEngine(WithTolerance(-1)).Tolerance())
	assert.Equal(t, 12.0, NewEngine(WithTolerance(12)).Tolerance())

	assert.Equal(t, DefaultCacheCapacity, NewEngine().CacheStats().Capacity)
	assert.Equal(t, 2, NewEngine(WithCacheCapacity(2)).CacheStats().Capacity)
	assert.Equal(t, DefaultCacheCapacity, NewEngine(WithCacheCapacity(0)).CacheStats().Capacity)
}

func TestEngineCacheEviction(t *testing.T) {
	e := NewEngine(WithCacheCapacity(1))
	a := &PathNode{ID: "a", Path: pathkit.MustParse("M0,0 L10,0")}
	b := &PathNode{ID: "b", Path: pathkit.MustParse("M0,20 L10,20")}

	assert.True(t, e.Test(a, pathkit.Pt(5, 0)))
	assert.True(t, e.Test(b, pathkit.Pt(5, 20)))
	assert.True(t, e.Test(a, pathkit.Pt(5, 0)))

	stats := e.CacheStats()
	assert.Equal(t, 1, stats.Len)
	assert.Equal(t, uint64(3), stats.Misses)
	assert.Equal(t, uint64(2), stats.Evictions)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bad := pathkit.NewPath()
	bad.LineTo(1, 1)
	e := NewEngine(WithLogger(logger))
	assert.False(t, e.Test(&PathNode{ID: "bad", Path: bad}, pathkit.Pt(1, 1)))
	assert.Contains(t, buf.String(), "hittest: node not testable")
	assert.Contains(t, buf.String(), "node=bad")

	buf.Reset()
	tr := NewTracker(e, []Node{&Rect{ID: "r", W: 10, H: 10, Filled: true}})
	tr.Move(pathkit.Pt(5, 5))
	assert.Contains(t, buf.String(), "hittest: state changed")
	assert.Contains(t, buf.String(), "to=highlighted")
}
