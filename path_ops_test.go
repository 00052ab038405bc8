package pathkit

import (
	"math"
	"testing"
)

func TestPathWinding(t *testing.T) {
	tests := []struct {
		name string
		d    string
		pt   Point
		want int
	}{
		{"inside square", "M0,0 L10,0 L10,10 L0,10 Z", Pt(5, 5), 1},
		{"inside reversed square", "M0,0 L0,10 L10,10 L10,0 Z", Pt(5, 5), -1},
		{"outside square", "M0,0 L10,0 L10,10 L0,10 Z", Pt(15, 5), 0},
		{"open triangle closes implicitly", "M0,0 L10,0 L10,10", Pt(8, 2), 1},
		{"nested squares same direction", "M0,0 L20,0 L20,20 L0,20 Z M5,5 L15,5 L15,15 L5,15 Z", Pt(10, 10), 2},
		{"quad dome", "M0,10 Q10,-10 20,10 Z", Pt(10, 5), 1},
		{"cubic dome", "M0,10 C0,-5 20,-5 20,10 Z", Pt(10, 5), 1},
		{"above cubic dome", "M0,10 C0,-5 20,-5 20,10 Z", Pt(10, -5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustParse(tt.d).Winding(tt.pt); got != tt.want {
				t.Errorf("Winding(%v) = %d, want %d", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPathContainsArcCircle(t *testing.T) {
	p := MustParse("M0,5 A5,5 0 0,1 10,5 A5,5 0 0,1 0,5 Z")

	inside := []Point{{5, 5}, {5, 0.5}, {9.5, 5}, {1, 5}}
	outside := []Point{{5, 11}, {-1, 5}, {0.5, 0.5}, {9.8, 9.8}}
	for _, pt := range inside {
		if !p.Contains(pt) {
			t.Errorf("Contains(%v) = false, want true", pt)
		}
	}
	for _, pt := range outside {
		if p.Contains(pt) {
			t.Errorf("Contains(%v) = true, want false", pt)
		}
	}
}

func TestPathBounds(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want Rect
	}{
		{"empty", "", Rect{}},
		{"lines", "M1,2 L10,-3 L4,8", Rect{Min: Pt(1, -3), Max: Pt(10, 8)}},
		{"quad extremum", "M0,0 Q5,10 10,0", Rect{Min: Pt(0, 0), Max: Pt(10, 5)}},
		{"arc circle", "M0,5 A5,5 0 0,1 10,5 A5,5 0 0,1 0,5", Rect{Min: Pt(0, 0), Max: Pt(10, 10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.d).Bounds()
			if !pointsEqual(got.Min, tt.want.Min, 1e-9) || !pointsEqual(got.Max, tt.want.Max, 1e-9) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathDistanceSquared(t *testing.T) {
	p := MustParse("M0,0 L10,0 L10,10")
	if got := p.DistanceSquared(Pt(5, 3)); math.Abs(got-9) > 1e-12 {
		t.Errorf("DistanceSquared = %v, want 9", got)
	}
	if got := p.DistanceSquared(Pt(13, 5)); math.Abs(got-9) > 1e-12 {
		t.Errorf("DistanceSquared = %v, want 9", got)
	}
	if got := NewPath().DistanceSquared(Pt(0, 0)); !math.IsInf(got, 1) {
		t.Errorf("empty path distance = %v, want +Inf", got)
	}
}

func TestSegmentMapMatchesPathOps(t *testing.T) {
	p := MustParse("M0,10 C0,-5 20,-5 20,10 Z")
	m, err := NewSegmentMap(p, DefaultSolverOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range []Point{{10, 5}, {10, -5}, {25, 5}} {
		if m.Contains(pt) != p.Contains(pt) {
			t.Errorf("Contains(%v) differs between SegmentMap and Path", pt)
		}
	}
	if m.Bounds() != p.Bounds() {
		t.Errorf("Bounds differ: %v vs %v", m.Bounds(), p.Bounds())
	}
}

func TestSegmentsIterationStops(t *testing.T) {
	p := MustParse("M0,0 L1,0 L2,0 L3,0")
	n := 0
	for range p.Segments(DefaultSolverOptions()) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d segments, want 2", n)
	}
}
