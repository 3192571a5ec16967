// SPDX-License-Identifier: MIT

package bootstrap

import (
	"math"
	"sort"

	"github.com/psymetrika/factorboot/pca"
)

// Stability is the per-component verdict.
type Stability int

const (
	// Stable: every salient loading keeps its sign in at least 95% of
	// surviving resamples and no salient interval straddles zero.
	Stable Stability = iota

	// Borderline: between the two thresholds.
	Borderline

	// Unstable: some salient loading flips sign in more than 20% of
	// surviving resamples, or its interval straddles zero.
	Unstable
)

const (
	stableSignRate   = 0.95
	unstableSignRate = 0.80
)

// String implements fmt.Stringer for reports.
func (s Stability) String() string {
	switch s {
	case Stable:
		return "stable"
	case Borderline:
		return "borderline"
	case Unstable:
		return "unstable"
	default:
		return "unknown"
	}
}

// Cell summarizes one (component, feature) loading over surviving
// resamples.
type Cell struct {
	// Reference is the full-sample loading.
	Reference float64

	// Mean of the aligned resample loadings.
	Mean float64

	// Lower and Upper bound the percentile interval.
	Lower, Upper float64

	// SignRate is the fraction of surviving resamples whose aligned
	// loading shares the reference sign. A zero reference counts matches
	// as non-negative products.
	SignRate float64

	// Salient marks cells whose reference magnitude reaches the salience
	// threshold; only these drive the verdict.
	Salient bool
}

// Straddles reports whether the interval contains zero.
func (c Cell) Straddles() bool { return c.Lower < 0 && c.Upper > 0 }

// Interval is a percentile summary of one scalar sequence.
type Interval struct {
	Mean         float64
	Lower, Upper float64
}

// ComponentSummary is the per-component verdict with its evidence.
type ComponentSummary struct {
	// Index is the component's position in the reference solution.
	Index int

	// Verdict classifies the component.
	Verdict Stability

	// SignRate is the weakest salient cell's sign-consistency; 1 when the
	// component has no salient cells.
	SignRate float64

	// NoFlipRate is the fraction of surviving resamples where alignment
	// matched this component without a sign flip.
	NoFlipRate float64

	// Explained summarizes the component's explained-variance ratio over
	// surviving resamples.
	Explained Interval
}

// Result is the full outcome of a bootstrap run.
type Result struct {
	// Reference is the full-sample solution all iterations aligned to.
	Reference *pca.Solution

	// Features names the loading columns.
	Features []string

	// Iterations is the configured resample count, Survived the number
	// that passed alignment.
	Iterations int
	Survived   int

	// Mode is the standardization variant the run was held to.
	Mode Standardization

	// Cells holds one summary per (component, feature).
	Cells [][]Cell

	// Components holds the per-component verdicts, reference order.
	Components []ComponentSummary
}

// Discarded counts resamples that failed alignment or were degenerate.
func (r *Result) Discarded() int { return r.Iterations - r.Survived }

// DiscardRate is the discarded fraction of all iterations.
func (r *Result) DiscardRate() float64 {
	return float64(r.Discarded()) / float64(r.Iterations)
}

// summarize folds surviving iterations into the Result. Iteration order is
// the merge order, so the summary never depends on scheduling.
func (a *Analyzer) summarize(ref *pca.Solution, features []string, iterations []iteration) (*Result, error) {
	var survivors []iteration
	for _, it := range iterations {
		if it.ok {
			survivors = append(survivors, it)
		}
	}
	if len(survivors) == 0 {
		return nil, ErrAllDiscarded
	}

	var (
		k   = ref.Components()
		p   = ref.Loadings.Cols()
		res = &Result{
			Reference:  ref,
			Features:   features,
			Iterations: len(iterations),
			Survived:   len(survivors),
			Mode:       a.o.mode,
			Cells:      make([][]Cell, k),
			Components: make([]ComponentSummary, k),
		}
		vals = make([]float64, len(survivors))
	)
	for row := 0; row < k; row++ {
		res.Cells[row] = make([]Cell, p)
		for j := 0; j < p; j++ {
			refVal, err := ref.Loadings.At(row, j)
			if err != nil {
				return nil, err
			}
			if err = collectCell(survivors, row, j, vals); err != nil {
				return nil, err
			}
			res.Cells[row][j] = a.makeCell(refVal, vals)
		}

		var noFlip int
		for i, it := range survivors {
			vals[i] = it.evr[row]
			if !it.flips[row] {
				noFlip++
			}
		}
		res.Components[row] = a.makeComponent(row, res.Cells[row], vals)
		res.Components[row].NoFlipRate = float64(noFlip) / float64(len(survivors))
	}

	return res, nil
}

// collectCell gathers one loading cell across survivors into vals.
func collectCell(survivors []iteration, row, col int, vals []float64) error {
	for i, it := range survivors {
		v, err := it.loadings.At(row, col)
		if err != nil {
			return err
		}
		vals[i] = v
	}

	return nil
}

func (a *Analyzer) makeCell(refVal float64, vals []float64) Cell {
	var (
		sum   float64
		agree int
	)
	for _, v := range vals {
		sum += v
		if sameSign(refVal, v) {
			agree++
		}
	}
	lo, hi := percentiles(vals, a.o.lowerPct, a.o.upperPct)

	return Cell{
		Reference: refVal,
		Mean:      sum / float64(len(vals)),
		Lower:     lo,
		Upper:     hi,
		SignRate:  float64(agree) / float64(len(vals)),
		Salient:   math.Abs(refVal) >= DefaultSalientThreshold,
	}
}

func (a *Analyzer) makeComponent(row int, cells []Cell, evr []float64) ComponentSummary {
	var (
		sum      float64
		signRate = 1.0
		straddle bool
	)
	for _, v := range evr {
		sum += v
	}
	lo, hi := percentiles(evr, a.o.lowerPct, a.o.upperPct)

	for _, c := range cells {
		if !c.Salient {
			continue
		}
		if c.SignRate < signRate {
			signRate = c.SignRate
		}
		if c.Straddles() {
			straddle = true
		}
	}

	verdict := Borderline
	switch {
	case signRate < unstableSignRate || straddle:
		verdict = Unstable
	case signRate >= stableSignRate && !straddle:
		verdict = Stable
	}

	return ComponentSummary{
		Index:    row,
		Verdict:  verdict,
		SignRate: signRate,
		Explained: Interval{
			Mean:  sum / float64(len(evr)),
			Lower: lo,
			Upper: hi,
		},
	}
}

// sameSign treats a zero on either side as agreement when the product is
// non-negative.
func sameSign(a, b float64) bool { return a*b >= 0 }

// percentiles returns the lo-th and hi-th percentile of vals by sorted
// linear interpolation. vals is not modified.
func percentiles(vals []float64, lo, hi float64) (float64, float64) {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	return percentileOf(sorted, lo), percentileOf(sorted, hi)
}

// percentileOf interpolates within an ascending slice.
func percentileOf(sorted []float64, pct float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)

	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
