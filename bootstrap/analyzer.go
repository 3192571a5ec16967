// SPDX-License-Identifier: MIT

package bootstrap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/psymetrika/factorboot/matrix"
	"github.com/psymetrika/factorboot/pca"
)

// Analyzer runs the resampling study. Construct it with New; an Analyzer is
// immutable and safe for concurrent use.
type Analyzer struct {
	o options
}

// New builds an Analyzer from options.
func New(opts ...Option) *Analyzer {
	return &Analyzer{o: gatherOptions(opts...)}
}

// iteration is one resample's aligned outcome. ok=false marks a discard.
type iteration struct {
	ok       bool
	loadings *matrix.Dense // aligned to reference row order
	evr      []float64     // aligned explained-variance ratios
	flips    []bool        // per reference component: sign was flipped
}

// Run fits the reference decomposition on scores and measures its stability
// over resamples of the rows.
// Implementation:
//   - Stage 1: standardize the full sample, fit the reference solution.
//   - Stage 2: fan iterations out over an errgroup bounded by the worker
//     count; each iteration resamples, standardizes, refits and aligns with
//     its own seeded source, writing into its own slot.
//   - Stage 3: merge by iteration index and summarize surviving iterations.
//
// An iteration is discarded, not failed, when its resample is degenerate
// (zero-variance column, singular spectrum) or when any reference component
// lacks a match at the similarity threshold.
// Determinism: identical inputs, options and seed give identical Results
// for every worker count.
// Errors: ErrNilInput, ErrFeatureCount, ErrAllDiscarded, plus pca errors
// from the reference fit.
// Complexity: O(iterations × (r·c² + c³)) work, O(iterations × k·c) space.
func (a *Analyzer) Run(ctx context.Context, scores *matrix.Dense, features []string) (*Result, error) {
	if scores == nil {
		return nil, ErrNilInput
	}
	if len(features) != scores.Cols() {
		return nil, fmt.Errorf("%d names for %d columns: %w", len(features), scores.Cols(), ErrFeatureCount)
	}

	fitOpts := a.fitOptions()
	params, err := pca.FitStandardizer(scores, features)
	if err != nil {
		return nil, err
	}
	Z, err := params.Transform(scores)
	if err != nil {
		return nil, err
	}
	ref, err := pca.Fit(Z, fitOpts...)
	if err != nil {
		return nil, err
	}

	iterations := make([]iteration, a.o.iterations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.o.workers)
	for i := 0; i < a.o.iterations; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			it, runErr := a.runIteration(i, scores, params, ref, fitOpts)
			if runErr != nil {
				return fmt.Errorf("bootstrap: iteration %d: %w", i, runErr)
			}
			iterations[i] = it

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return a.summarize(ref, features, iterations)
}

// fitOptions translates analyzer options into pca fit options.
func (a *Analyzer) fitOptions() []pca.Option {
	if a.o.components > 0 {
		return []pca.Option{pca.WithComponents(a.o.components)}
	}

	return nil
}

// runIteration executes one resample end to end. A degenerate resample
// returns ok=false; only infrastructure faults return an error.
func (a *Analyzer) runIteration(i int, scores *matrix.Dense, full *pca.Params, ref *pca.Solution, fitOpts []pca.Option) (iteration, error) {
	rng := sourceFor(a.o.seed, i)
	sample, err := matrix.SelectRows(scores, Resample(rng, scores.Rows()))
	if err != nil {
		return iteration{}, err
	}

	var Z *matrix.Dense
	switch a.o.mode {
	case Reuse:
		Z, err = full.Transform(sample)
	default:
		Z, _, err = pca.Standardize(sample, nil)
	}
	if err != nil {
		if discardable(err) {
			return iteration{}, nil
		}

		return iteration{}, err
	}

	sol, err := pca.Fit(Z, fitOpts...)
	if err != nil {
		if discardable(err) {
			return iteration{}, nil
		}

		return iteration{}, err
	}

	p, err := alignComponents(ref.Loadings, sol.Loadings)
	if err != nil {
		return iteration{}, err
	}
	if p.minSimilarity() < a.o.threshold {
		return iteration{}, nil
	}
	aligned, err := p.apply(sol.Loadings)
	if err != nil {
		return iteration{}, err
	}

	return iteration{
		ok:       true,
		loadings: aligned,
		evr:      p.permute(sol.ExplainedVariance),
		flips:    append([]bool(nil), p.flip...),
	}, nil
}
