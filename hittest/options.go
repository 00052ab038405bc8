package hittest

import (
	"log/slog"

	"github.com/gogpu/pathkit"
)

// Default engine settings.
const (
	DefaultTolerance     = 5.0
	DefaultCacheCapacity = pathkit.DefaultSegmentCacheCapacity
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Default tolerance and cache
//	e := hittest.NewEngine()
//
//	// Wider tolerance for touch input
//	e := hittest.NewEngine(hittest.WithTolerance(12))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	tolerance     float64
	cacheCapacity int
	solver        pathkit.SolverOptions
	logger        *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		tolerance:     DefaultTolerance,
		cacheCapacity: DefaultCacheCapacity,
		solver:        pathkit.DefaultSolverOptions(),
		logger:        nil, // Resolved to pathkit.Logger() at use
	}
}

// WithTolerance sets the highlight tolerance: the distance within which
// the cursor touches an outline. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *engineOptions) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithCacheCapacity sets how many paths keep their segments cached.
// Non-positive values are ignored.
func WithCacheCapacity(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.cacheCapacity = n
		}
	}
}

// WithSolver sets the curve distance solver options. Zero fields keep
// their defaults.
func WithSolver(s pathkit.SolverOptions) Option {
	return func(o *engineOptions) {
		if s.Samples > 0 {
			o.solver.Samples = s.Samples
		}
		if s.Tolerance > 0 {
			o.solver.Tolerance = s.Tolerance
		}
	}
}

// WithLogger sets the engine's logger. By default the engine logs through
// pathkit.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}
