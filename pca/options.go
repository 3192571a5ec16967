// SPDX-License-Identifier: MIT

package pca

import "math"

// Documented defaults, applied before user overrides.
const (
	// DefaultTolerance is the Jacobi off-diagonal convergence threshold.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations bounds the Jacobi sweep count.
	DefaultMaxIterations = 500
)

const (
	panicToleranceInvalid  = "pca: WithTolerance: tol must be finite, positive"
	panicIterationsInvalid = "pca: WithMaxIterations: count must be positive"
	panicComponentsInvalid = "pca: WithComponents: count must be positive"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	components int // 0 means all columns
	tol        float64
	maxIter    int
}

func gatherOptions(opts ...Option) options {
	o := options{
		components: 0,
		tol:        DefaultTolerance,
		maxIter:    DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithComponents keeps only the leading k components. The default keeps all.
// Panics when k < 1; a k exceeding the column count surfaces later as
// ErrBadComponents because the bound depends on the data.
func WithComponents(k int) Option {
	if k < 1 {
		panic(panicComponentsInvalid)
	}

	return func(o *options) { o.components = k }
}

// WithTolerance sets the Jacobi convergence threshold. Panics on
// non-positive or non-finite values.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithMaxIterations bounds the Jacobi sweeps. Panics when n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(panicIterationsInvalid)
	}

	return func(o *options) { o.maxIter = n }
}
