// SPDX-License-Identifier: MIT

package construct

import "errors"

var (
	// ErrInsufficientCoverage is returned when, after dropping respondents
	// with undefined construct scores, fewer than the configured minimum
	// remain. Match with errors.Is.
	ErrInsufficientCoverage = errors.New("construct: insufficient respondent coverage")

	// ErrNoFeatures is returned when the validated mapping yields no
	// constructs to aggregate.
	ErrNoFeatures = errors.New("construct: no features to aggregate")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized
	// aggregation strategy names.
	ErrUnknownStrategy = errors.New("construct: unknown aggregation strategy")
)
