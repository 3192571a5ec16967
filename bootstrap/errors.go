// SPDX-License-Identifier: MIT

package bootstrap

import (
	"errors"

	"github.com/psymetrika/factorboot/matrix"
	"github.com/psymetrika/factorboot/pca"
)

var (
	// ErrAllDiscarded is returned when no resample survives alignment, so
	// intervals and sign rates would have an empty denominator.
	ErrAllDiscarded = errors.New("bootstrap: all resamples discarded")

	// ErrNilInput is returned when the score matrix is nil.
	ErrNilInput = errors.New("bootstrap: nil input matrix")

	// ErrFeatureCount is returned when the feature-name list does not match
	// the score matrix columns.
	ErrFeatureCount = errors.New("bootstrap: feature names do not match columns")

	// ErrUnknownMode is returned by ParseStandardization for unrecognized
	// mode names.
	ErrUnknownMode = errors.New("bootstrap: unknown standardization mode")
)

// discardable reports whether an iteration error marks a degenerate
// resample rather than an infrastructure fault. Degenerate resamples are
// counted as discards, not failures.
func discardable(err error) bool {
	return errors.Is(err, pca.ErrZeroVariance) ||
		errors.Is(err, pca.ErrSingularInput) ||
		errors.Is(err, matrix.ErrEigenFailed)
}
