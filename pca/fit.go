// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"math"
	"sort"

	"github.com/psymetrika/factorboot/matrix"
)

// Solution is a fitted principal-component decomposition.
type Solution struct {
	// Loadings has one row per component and one column per input column,
	// components in descending eigenvalue order. Rows are unit-norm and
	// mutually orthogonal; each row's largest-magnitude entry is positive.
	Loadings *matrix.Dense

	// Eigenvalues of the covariance matrix, descending, one per kept
	// component.
	Eigenvalues []float64

	// ExplainedVariance holds each kept component's share of the total
	// variance (all components' eigenvalue sum), in [0, 1].
	ExplainedVariance []float64

	// Scores projects the input rows onto the kept components: r × k.
	Scores *matrix.Dense
}

// Components returns the number of kept components.
func (s *Solution) Components() int { return s.Loadings.Rows() }

// Fit decomposes an already standardized matrix into principal components.
// Implementation:
//   - Stage 1: Validate shape and the requested component count.
//   - Stage 2: Covariance + Jacobi eigen decomposition.
//   - Stage 3: Sort eigenpairs by descending eigenvalue (index tiebreak),
//     clamp small negative eigenvalues to zero, keep the leading k.
//   - Stage 4: Normalize each component's sign and project scores.
//
// Determinism: the eigen solver's pivot order, the stable sort and the sign
// rule are all fixed, so identical inputs give identical outputs.
// Errors: ErrBadComponents; ErrSingularInput when the eigenvalue rank (at
// the convergence tolerance) is below the requested component count;
// matrix.ErrEigenFailed and shape errors from the kernels.
// Complexity: O(r*c² + c³) time, O(c²) space.
func Fit(X *matrix.Dense, opts ...Option) (*Solution, error) {
	o := gatherOptions(opts...)

	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, err
	}
	p := X.Cols()
	k := o.components
	if k == 0 {
		k = p
	}
	if k > p {
		return nil, fmt.Errorf("want %d of %d columns: %w", k, p, ErrBadComponents)
	}

	cov, _, err := matrix.Covariance(X)
	if err != nil {
		return nil, err
	}
	eig, vecs, err := matrix.Eigen(cov, o.tol, o.maxIter)
	if err != nil {
		return nil, err
	}

	// Descending eigenvalue order; ties resolved by original index so the
	// ordering never depends on sort internals.
	order := make([]int, p)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if eig[order[a]] != eig[order[b]] {
			return eig[order[a]] > eig[order[b]]
		}

		return order[a] < order[b]
	})

	// Jacobi on a PSD matrix can leave tiny negative values; clamp before
	// forming variance ratios.
	var (
		total float64
		rank  int
	)
	for _, i := range order {
		if eig[i] < 0 && eig[i] > -o.tol {
			eig[i] = 0
		}
		total += math.Max(eig[i], 0)
		if eig[i] > o.tol {
			rank++
		}
	}
	if rank < k {
		return nil, fmt.Errorf("rank %d below %d requested components: %w", rank, k, ErrSingularInput)
	}

	loadings, err := matrix.NewDense(k, p)
	if err != nil {
		return nil, err
	}
	var (
		vals   = make([]float64, k)
		ratios = make([]float64, k)
		v      float64
	)
	for row := 0; row < k; row++ {
		src := order[row]
		vals[row] = math.Max(eig[src], 0)
		ratios[row] = vals[row] / total
		for j := 0; j < p; j++ {
			if v, err = vecs.At(j, src); err != nil {
				return nil, err
			}
			if err = loadings.Set(row, j, v); err != nil {
				return nil, err
			}
		}
		if err = orientComponent(loadings, row); err != nil {
			return nil, err
		}
	}

	projection, err := matrix.Transpose(loadings)
	if err != nil {
		return nil, err
	}
	scores, err := matrix.Mul(X, projection)
	if err != nil {
		return nil, err
	}

	return &Solution{
		Loadings:          loadings,
		Eigenvalues:       vals,
		ExplainedVariance: ratios,
		Scores:            scores,
	}, nil
}

// orientComponent flips a loading row in place so its largest-magnitude
// entry (first index on ties) is positive.
func orientComponent(loadings *matrix.Dense, row int) error {
	var (
		best    float64
		bestVal float64
		v       float64
		err     error
	)
	for j := 0; j < loadings.Cols(); j++ {
		if v, err = loadings.At(row, j); err != nil {
			return err
		}
		if math.Abs(v) > best {
			best = math.Abs(v)
			bestVal = v
		}
	}
	if bestVal >= 0 {
		return nil
	}
	for j := 0; j < loadings.Cols(); j++ {
		if v, err = loadings.At(row, j); err != nil {
			return err
		}
		if err = loadings.Set(row, j, -v); err != nil {
			return err
		}
	}

	return nil
}
