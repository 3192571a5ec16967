// SPDX-License-Identifier: MIT

// Package construct turns validated item-level survey responses into a
// respondent × construct score matrix.
//
// Each construct (feature) owns an ordered list of contributing items. A
// respondent's construct score is the mean (or sum) of their non-missing
// answers to those items. A score is only defined when the respondent
// answered at least a configurable fraction of the items; respondents with
// any undefined score are dropped, and the run fails with
// ErrInsufficientCoverage when too few respondents survive.
//
// The output column order is the validated feature order and the row order
// is the surviving subset of the input row order, so repeated runs over the
// same inputs are bit-for-bit identical.
package construct
