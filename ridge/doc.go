// SPDX-License-Identifier: MIT

// Package ridge fits an L2-regularized linear model on construct scores.
//
// It is the small predictive companion to the stability analysis: once
// constructs are scored, a ridge fit against an outcome column gives a
// quick read on how much signal the constructs carry. The solve is the
// closed form (XᵀX + αI)⁻¹ Xᵀy on centered data, with the intercept
// recovered from the column means, so results are exactly reproducible.
package ridge
