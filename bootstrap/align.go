// SPDX-License-Identifier: MIT

package bootstrap

import (
	"math"

	"github.com/psymetrika/factorboot/matrix"
)

// pairing is the outcome of matching refit components to the reference.
type pairing struct {
	// perm[r] is the refit row matched to reference row r.
	perm []int
	// flip[r] reports whether the matched row was sign-flipped.
	flip []bool
	// sim[r] is the |cosine| of the match.
	sim []float64
}

// alignComponents matches every reference loading row to a distinct refit
// row by greedy maximum-|cosine| pairing.
// Implementation:
//   - Stage 1: |cosine| between every (reference, refit) row pair.
//   - Stage 2: repeatedly take the globally best unused pair; ties resolve
//     by lower reference index, then lower refit index, so the pairing is
//     deterministic.
//
// Sign handling is the caller's: a match with negative signed cosine is
// marked for flipping. Aligning a solution against itself yields the
// identity permutation with no flips, so alignment is idempotent.
// Complexity: O(k²·p + k³) worst case, trivial at survey scale.
func alignComponents(ref, refit *matrix.Dense) (*pairing, error) {
	k := ref.Rows()

	cos := make([][]float64, k) // signed cosines
	for r := 0; r < k; r++ {
		cos[r] = make([]float64, k)
		for g := 0; g < k; g++ {
			c, err := rowCosine(ref, r, refit, g)
			if err != nil {
				return nil, err
			}
			cos[r][g] = c
		}
	}

	p := &pairing{
		perm: make([]int, k),
		flip: make([]bool, k),
		sim:  make([]float64, k),
	}
	var (
		usedRef   = make([]bool, k)
		usedRefit = make([]bool, k)
	)
	for step := 0; step < k; step++ {
		bestRef, bestRefit, best := -1, -1, -1.0
		for r := 0; r < k; r++ {
			if usedRef[r] {
				continue
			}
			for g := 0; g < k; g++ {
				if usedRefit[g] {
					continue
				}
				if a := math.Abs(cos[r][g]); a > best {
					best, bestRef, bestRefit = a, r, g
				}
			}
		}
		usedRef[bestRef] = true
		usedRefit[bestRefit] = true
		p.perm[bestRef] = bestRefit
		p.flip[bestRef] = cos[bestRef][bestRefit] < 0
		p.sim[bestRef] = best
	}

	return p, nil
}

// minSimilarity returns the weakest match in the pairing.
func (p *pairing) minSimilarity() float64 {
	min := math.Inf(1)
	for _, s := range p.sim {
		if s < min {
			min = s
		}
	}

	return min
}

// apply reorders and sign-corrects refit rows into reference order.
func (p *pairing) apply(refit *matrix.Dense) (*matrix.Dense, error) {
	out, err := matrix.NewDense(refit.Rows(), refit.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for r, g := range p.perm {
		for j := 0; j < refit.Cols(); j++ {
			if v, err = refit.At(g, j); err != nil {
				return nil, err
			}
			if p.flip[r] {
				v = -v
			}
			if err = out.Set(r, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// permute reorders a per-component slice into reference order.
func (p *pairing) permute(vals []float64) []float64 {
	out := make([]float64, len(p.perm))
	for r, g := range p.perm {
		out[r] = vals[g]
	}

	return out
}

// rowCosine computes the signed cosine between row a of X and row b of Y.
// Zero-norm rows yield cosine 0, which alignment then treats as no match.
func rowCosine(X *matrix.Dense, a int, Y *matrix.Dense, b int) (float64, error) {
	var (
		dot, na, nb float64
		va, vb      float64
		err         error
	)
	for j := 0; j < X.Cols(); j++ {
		if va, err = X.At(a, j); err != nil {
			return 0, err
		}
		if vb, err = Y.At(b, j); err != nil {
			return 0, err
		}
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}

	return dot / math.Sqrt(na*nb), nil
}
