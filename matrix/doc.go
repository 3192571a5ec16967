// Package matrix provides the dense numeric kernels behind factorboot:
// row-major float64 matrices plus the handful of deterministic linear-algebra
// and statistics routines the PCA / bootstrap / ridge layers need.
//
// The package is deliberately small and *Dense-centric — every pipeline in
// this module produces and consumes one concrete matrix type, so kernels
// operate on flat row-major slices with fixed loop orders.
//
// Provided kernels:
//
//   - Constructors: NewDense, NewDenseFromRows, NewIdentity
//   - Element-wise: Add, Scale
//   - Products: Mul, Transpose, MatVec
//   - Statistics: CenterColumns, ColumnStats, Covariance, SelectRows
//   - Spectral: Eigen (cyclic Jacobi for symmetric matrices)
//   - Factorization: LU (Doolittle), Inverse
//
// Determinism:
//
//	All loops run in fixed i→j(→k) order; no randomness, no map iteration.
//	Identical inputs produce bit-for-bit identical outputs, which the
//	bootstrap layer relies on for reproducible confidence intervals.
//
// Errors:
//
//	All user-triggered failures return package sentinels (errors.go) matched
//	via errors.Is; call sites wrap them with an operation tag. Kernels never
//	panic on user input.
package matrix
