// SPDX-License-Identifier: MIT

package construct

import (
	"fmt"
	"strings"
)

// Strategy selects how a construct score is formed from its item answers.
type Strategy int

const (
	// Mean averages the non-missing item answers. The default; robust to
	// constructs of different item counts.
	Mean Strategy = iota

	// Sum totals the non-missing item answers. Matches classic scale-sum
	// scoring but couples the score magnitude to the item count.
	Sum
)

// ParseStrategy maps a configuration string onto a Strategy.
// Errors: ErrUnknownStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "":
		return Mean, nil
	case "sum":
		return Sum, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownStrategy)
	}
}

// String implements fmt.Stringer for logs and config round-trips.
func (s Strategy) String() string {
	switch s {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Documented defaults, applied before user overrides.
const (
	// DefaultMinCoverage: a score is defined when at least half of a
	// construct's items were answered.
	DefaultMinCoverage = 0.5

	// DefaultMinRespondents: the smallest score matrix worth analyzing.
	DefaultMinRespondents = 3
)

const (
	panicMinCoverageInvalid    = "construct: WithMinCoverage: fraction must be in (0, 1]"
	panicMinRespondentsInvalid = "construct: WithMinRespondents: count must be positive"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	strategy       Strategy
	minCoverage    float64
	minRespondents int
}

// gatherOptions resolves defaults plus user overrides.
func gatherOptions(opts ...Option) options {
	o := options{
		strategy:       Mean,
		minCoverage:    DefaultMinCoverage,
		minRespondents: DefaultMinRespondents,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithStrategy selects mean or sum scoring.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithMinCoverage sets the minimum answered-item fraction for a score to be
// defined. Panics when the fraction is outside (0, 1].
func WithMinCoverage(frac float64) Option {
	if !(frac > 0 && frac <= 1) {
		panic(panicMinCoverageInvalid)
	}

	return func(o *options) { o.minCoverage = frac }
}

// WithMinRespondents sets the smallest surviving respondent count accepted
// before aggregation fails. Panics when n < 1.
func WithMinRespondents(n int) Option {
	if n < 1 {
		panic(panicMinRespondentsInvalid)
	}

	return func(o *options) { o.minRespondents = n }
}
