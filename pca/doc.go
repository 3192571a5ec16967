// SPDX-License-Identifier: MIT

// Package pca fits principal components to a construct-score matrix.
//
// The package splits the job in two:
//
//   - Standardizer (FitStandardizer / Params.Transform): per-column z-score
//     parameters fitted on one matrix and applicable to another, so a
//     bootstrap run can choose between refitting on each resample or reusing
//     the full-sample parameters.
//   - Fit: covariance + Jacobi eigen decomposition of an already
//     standardized matrix, yielding loadings, explained-variance ratios and
//     respondent scores.
//
// Components are ordered by descending eigenvalue. Each component's sign is
// normalized so its largest-magnitude loading is positive, which gives
// downstream stability analysis a fixed reference orientation.
//
// All operations are deterministic: identical inputs and options produce
// bit-for-bit identical outputs.
package pca
