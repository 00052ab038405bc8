package pathkit

import "math"

// Nearest-point search for parametric curves.
//
// Bezier distance has no convenient closed form (the quadratic case is a
// cubic equation, the cubic case a quintic), so curves are searched
// numerically: a coarse uniform scan picks the closest sample, then the
// bracket around it is narrowed by comparing distances on either side of
// its middle until the bracket spans no more than Tolerance units of
// curve.

// maxRefineSteps bounds refinement on curves whose bracket never
// shrinks below the tolerance, such as long degenerate cubics.
const maxRefineSteps = 64

// SolverOptions tunes the nearest-point search.
type SolverOptions struct {
	// Samples is the number of uniform steps in the coarse scan.
	Samples int
	// Tolerance is the curve-space length at which refinement stops.
	Tolerance float64
}

// DefaultSolverOptions returns the standard solver settings:
// 25 samples and a tolerance of 1 unit.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{Samples: 25, Tolerance: 1}
}

// normalize replaces unset fields with defaults.
func (o SolverOptions) normalize() SolverOptions {
	d := DefaultSolverOptions()
	if o.Samples <= 0 {
		o.Samples = d.Samples
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	return o
}

// nearest returns the parameter in [0, 1] of the point on eval closest to
// p, together with its squared distance. The result is never worse than
// the best coarse sample, so endpoints report zero exactly.
func nearest(eval func(t float64) Point, p Point, opts SolverOptions) (float64, float64) {
	opts = opts.normalize()
	n := float64(opts.Samples)

	bestI, bestD := 0, math.Inf(1)
	for i := 0; i <= opts.Samples; i++ {
		d := eval(float64(i) / n).DistanceSquared(p)
		if d < bestD {
			bestI, bestD = i, d
		}
	}

	lo := math.Max(0, float64(bestI-1)/n)
	hi := math.Min(1, float64(bestI+1)/n)
	for range maxRefineSteps {
		if eval(lo).Distance(eval(hi)) <= opts.Tolerance {
			break
		}
		mid := (lo + hi) / 2
		eps := (hi - lo) / 16
		if eval(mid-eps).DistanceSquared(p) < eval(mid+eps).DistanceSquared(p) {
			hi = mid
		} else {
			lo = mid
		}
	}

	t := (lo + hi) / 2
	d := eval(t).DistanceSquared(p)
	if bestD <= d {
		return float64(bestI) / n, bestD
	}
	return t, d
}

// Nearest returns the parameter of the point on q closest to p and the
// squared distance to it.
func (q QuadBez) Nearest(p Point, opts SolverOptions) (t, distSq float64) {
	return nearest(q.Eval, p, opts)
}

// DistanceSquared returns the squared distance from p to the curve.
func (q QuadBez) DistanceSquared(p Point, opts SolverOptions) float64 {
	_, d := nearest(q.Eval, p, opts)
	return d
}

// Midpoint returns the point at t=0.5.
func (q QuadBez) Midpoint() Point {
	return q.Eval(0.5)
}

// Nearest returns the parameter of the point on c closest to p and the
// squared distance to it.
func (c CubicBez) Nearest(p Point, opts SolverOptions) (t, distSq float64) {
	return nearest(c.Eval, p, opts)
}

// DistanceSquared returns the squared distance from p to the curve.
func (c CubicBez) DistanceSquared(p Point, opts SolverOptions) float64 {
	_, d := nearest(c.Eval, p, opts)
	return d
}

// Midpoint returns the point at t=0.5.
func (c CubicBez) Midpoint() Point {
	return c.Eval(0.5)
}
