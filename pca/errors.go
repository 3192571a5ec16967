// SPDX-License-Identifier: MIT

package pca

import "errors"

var (
	// ErrZeroVariance is returned when a column is constant: its z-score is
	// undefined and standardizing it would produce NaN. The wrapping error
	// names the offending column.
	ErrZeroVariance = errors.New("pca: zero-variance column")

	// ErrSingularInput is returned when the input's eigenvalue rank falls
	// below the requested component count, so the trailing components
	// would be numeric noise.
	ErrSingularInput = errors.New("pca: singular input")

	// ErrBadComponents is returned when the requested component count is
	// negative or exceeds the number of columns.
	ErrBadComponents = errors.New("pca: invalid component count")

	// ErrParamsMismatch is returned when Transform is applied to a matrix
	// whose column count differs from the fitted parameters.
	ErrParamsMismatch = errors.New("pca: standardizer parameter mismatch")
)
