// SPDX-License-Identifier: MIT

package matrix

import "math"

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// classical Jacobi rotations. This is the spectral engine behind pca.Fit:
// construct covariance matrices are tiny (a handful of features), where
// Jacobi is simple, deterministic and accurate.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in fixed i→j
//     order and apply a Jacobi rotation, accumulating the rotations into Q.
//   - Stage 3: Verify the off-diagonal mass converged below tol.
//
// Inputs:
//   - m: symmetric matrix (within tol); n := m.Rows().
//   - tol: convergence threshold (typ. 1e-9..1e-12 for float64).
//   - maxIter: safety cap on rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unordered).
//   - *Dense: Q whose columns are the matching eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry (preconditions),
//     ErrEigenFailed (off-diagonal ≥ tol after maxIter rotations).
//
// Determinism:
//   - Fixed pivot scan and update order produce stable results; callers
//     ordering by eigenvalue get bit-for-bit identical decompositions.
//
// Complexity: Time O(maxIter * n²) per sweep bookkeeping with O(n) updates
// per rotation; Space O(n²).
func Eigen(m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	// Working copy A and orthogonal accumulator Q (identity).
	n := m.r
	A := m.Clone()
	Q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, j, p, q   int
		base               int
		maxOff, off        float64
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		newIP, newIQ       float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: find pivot (p,q) maximizing |A[p,q]| over the upper triangle.
		maxOff = 0
		for i = 0; i < n; i++ {
			base = i * n
			for j = i + 1; j < n; j++ {
				off = math.Abs(A.data[base+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}

		// J.2: converged when the largest off-diagonal entry is below tol.
		if maxOff < tol {
			break
		}

		// J.3: rotation parameters from A[p,p], A[q,q], A[p,q].
		app = A.data[p*n+p]
		aqq = A.data[q*n+q]
		apq = A.data[p*n+q]
		if math.Abs(apq) <= tol {
			continue // no-op rotation; pivot search will progress
		}
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: apply the rotation to A, preserving symmetry explicitly.
		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip = A.data[i*n+p]
			aiq = A.data[i*n+q]
			newIP = c*aip - s*aiq
			newIQ = s*aip + c*aiq
			A.data[i*n+p], A.data[p*n+i] = newIP, newIP
			A.data[i*n+q], A.data[q*n+i] = newIQ, newIQ
		}
		A.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		A.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		A.data[p*n+q], A.data[q*n+p] = 0, 0

		// J.5: accumulate the rotation into Q.
		for i = 0; i < n; i++ {
			qip = Q.data[i*n+p]
			qiq = Q.data[i*n+q]
			Q.data[i*n+p] = c*qip - s*qiq
			Q.data[i*n+q] = s*qip + c*qiq
		}
	}

	// Final convergence check: recompute max off-diagonal.
	maxOff = 0
	for i = 0; i < n; i++ {
		base = i * n
		for j = i + 1; j < n; j++ {
			off = math.Abs(A.data[base+j])
			if off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}

	// Eigenvalues live on the diagonal of the rotated matrix.
	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = A.data[i*n+i]
	}

	return eigs, Q, nil
}
