// SPDX-License-Identifier: MIT

package bootstrap

import (
	"fmt"
	"strings"
)

// Standardization selects how each resample is scaled before refitting.
type Standardization int

const (
	// Refit estimates fresh means and deviations on every resample. The
	// default; it propagates scale uncertainty into the intervals.
	Refit Standardization = iota

	// Reuse applies the full-sample parameters to every resample, so only
	// sampling variation in the correlation structure is measured.
	Reuse
)

// ParseStandardization maps a configuration string onto a mode.
// Errors: ErrUnknownMode.
func ParseStandardization(s string) (Standardization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "refit", "":
		return Refit, nil
	case "reuse":
		return Reuse, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
	}
}

// String implements fmt.Stringer for logs and config round-trips.
func (s Standardization) String() string {
	switch s {
	case Refit:
		return "refit"
	case Reuse:
		return "reuse"
	default:
		return "unknown"
	}
}

// Documented defaults, applied before user overrides.
const (
	// DefaultIterations balances interval smoothness against runtime.
	DefaultIterations = 1000

	// DefaultSeed keeps unconfigured runs reproducible.
	DefaultSeed = 42

	// DefaultWorkers runs iterations sequentially; raise it to fan out.
	DefaultWorkers = 1

	// DefaultSimilarityThreshold is the minimum |cosine| for an aligned
	// component match to count.
	DefaultSimilarityThreshold = 0.5

	// DefaultLowerPercentile and DefaultUpperPercentile bound the 95%
	// interval.
	DefaultLowerPercentile = 2.5
	DefaultUpperPercentile = 97.5

	// DefaultSalientThreshold marks a reference loading as salient; only
	// salient cells drive the stability verdict.
	DefaultSalientThreshold = 0.30
)

const (
	panicIterationsInvalid  = "bootstrap: WithIterations: count must be positive"
	panicWorkersInvalid     = "bootstrap: WithWorkers: count must be positive"
	panicThresholdInvalid   = "bootstrap: WithSimilarityThreshold: value must be in (0, 1]"
	panicPercentilesInvalid = "bootstrap: WithPercentiles: need 0 <= lo < hi <= 100"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	iterations int
	seed       int64
	workers    int
	threshold  float64
	lowerPct   float64
	upperPct   float64
	mode       Standardization
	components int // 0 means all columns
}

func gatherOptions(opts ...Option) options {
	o := options{
		iterations: DefaultIterations,
		seed:       DefaultSeed,
		workers:    DefaultWorkers,
		threshold:  DefaultSimilarityThreshold,
		lowerPct:   DefaultLowerPercentile,
		upperPct:   DefaultUpperPercentile,
		mode:       Refit,
		components: 0,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithIterations sets the resample count. Panics when n < 1.
func WithIterations(n int) Option {
	if n < 1 {
		panic(panicIterationsInvalid)
	}

	return func(o *options) { o.iterations = n }
}

// WithSeed fixes the root seed all iteration sources derive from.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers bounds concurrent iteration fits. The output is identical for
// any worker count. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithSimilarityThreshold sets the minimum |cosine| an aligned match needs.
// Panics when the value is outside (0, 1].
func WithSimilarityThreshold(v float64) Option {
	if !(v > 0 && v <= 1) {
		panic(panicThresholdInvalid)
	}

	return func(o *options) { o.threshold = v }
}

// WithPercentiles sets the interval bounds in percent. Panics unless
// 0 <= lo < hi <= 100.
func WithPercentiles(lo, hi float64) Option {
	if !(lo >= 0 && lo < hi && hi <= 100) {
		panic(panicPercentilesInvalid)
	}

	return func(o *options) {
		o.lowerPct = lo
		o.upperPct = hi
	}
}

// WithStandardization selects refit-per-resample or full-sample reuse.
func WithStandardization(m Standardization) Option {
	return func(o *options) { o.mode = m }
}

// WithComponents keeps only the leading k components. The default keeps all.
// Panics when k < 1.
func WithComponents(k int) Option {
	if k < 1 {
		panic("bootstrap: WithComponents: count must be positive")
	}

	return func(o *options) { o.components = k }
}
