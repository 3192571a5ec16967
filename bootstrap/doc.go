// SPDX-License-Identifier: MIT

// Package bootstrap measures how stable a principal-component solution is
// under resampling of respondents.
//
// The analyzer fits a reference decomposition on the full sample, then
// repeatedly:
//
//   - draws a respondent resample with replacement,
//   - standardizes it (refit per resample, or reuse the full-sample scale),
//   - refits the decomposition,
//   - aligns the refit components against the reference by greedy
//     maximum-|cosine| pairing without reuse, flipping signs so each match
//     points the reference way.
//
// Iterations whose best match for any reference component falls below the
// similarity threshold are discarded; surviving aligned loadings feed
// percentile confidence intervals, sign-consistency rates and a
// Stable / Borderline / Unstable verdict per component.
//
// Runs are reproducible: each iteration owns a random source derived from
// the configured seed and the iteration index, and results merge by
// iteration index, so the worker count never changes the output.
package bootstrap
