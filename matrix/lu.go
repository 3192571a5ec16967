// SPDX-License-Identifier: MIT

package matrix

// LU computes the Doolittle factorization A = L*U with unit diagonal on L.
// No pivoting: the ridge normal-equation matrices this module inverts are
// symmetric positive definite for alpha > 0, and the deterministic scheme
// keeps results bit-for-bit reproducible.
//
// Implementation:
//   - Stage 1: Validate m non-nil and square; allocate L, U; set diag(L)=1.
//   - Stage 2: For i=0..n-1, build row i of U then column i of L in fixed order.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular (zero pivot).
// Complexity: Time O(n³), Space O(n²).
func LU(m *Dense) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := m.r
	L, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var (
		i, j, k      int
		baseI, baseJ int
		sum, pivot   float64
	)
	for i = 0; i < n; i++ {
		// Row i of U for j >= i.
		baseI = i * n
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[baseI+k] * U.data[k*n+j]
			}
			U.data[baseI+j] = m.data[baseI+j] - sum
		}

		// Zero-pivot guard (deterministic singularity detection).
		pivot = U.data[baseI+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}

		// Column i of L for j > i.
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			baseJ = j * n
			for k = 0; k < i; k++ {
				sum += L.data[baseJ+k] * U.data[k*n+i]
			}
			L.data[baseJ+i] = (m.data[baseJ+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// Inverse computes A⁻¹ via the LU factorization, solving L*y = e_col and
// U*x = y for each canonical basis column.
//
// Implementation:
//   - Stage 1: Validate and factorize via LU(m).
//   - Stage 2: Per column: forward solve (top-down), backward solve
//     (bottom-up with pivot checks), write x into the result column.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular.
// Complexity: Time O(n³), Space O(n²).
func Inverse(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	L, U, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := m.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k      int
		baseLi, baseUi int
		sum, pivot     float64
		y              = make([]float64, n) // forward substitution workspace
		x              = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = e_col.
		for i = 0; i < n; i++ {
			sum = ZeroSum
			baseLi = i * n
			for k = 0; k < i; k++ {
				sum += L.data[baseLi+k] * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U*x = y.
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			baseUi = i * n
			for k = i + 1; k < n; k++ {
				sum += U.data[baseUi+k] * x[k]
			}
			pivot = U.data[baseUi+i]
			if pivot == ZeroPivot {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
			x[i] = (y[i] - sum) / pivot
		}
		// Write x into column col.
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
