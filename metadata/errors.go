// SPDX-License-Identifier: MIT
// Package metadata: sentinel error set for mapping-contract violations.
// All four contract sentinels are fatal: a run must stop before any
// aggregation or PCA when one of them surfaces.

package metadata

import "errors"

var (
	// ErrSchemaMismatch indicates an old_name that does not exist in the raw
	// dataset's column set. The mapping and the data are out of sync.
	ErrSchemaMismatch = errors.New("metadata: mapping references columns missing from raw data")

	// ErrDuplicateMapping indicates a repeated (old_name, feature) pair or an
	// item mapped onto more than one feature. The contract is many-to-one.
	ErrDuplicateMapping = errors.New("metadata: duplicate item mapping")

	// ErrIdentifierLeakage indicates an identifier-like label (ip, geo,
	// email, …) in feature or cluster. Direct identifiers are excluded
	// upstream and must never be encoded in the mapping.
	ErrIdentifierLeakage = errors.New("metadata: identifier-like field in mapping")

	// ErrInconsistentCluster indicates entries of one feature carrying
	// different cluster labels.
	ErrInconsistentCluster = errors.New("metadata: inconsistent cluster labels for feature")

	// ErrMissingColumns indicates a metadata CSV without the required header
	// columns (old_name, cluster, sub_cluster, feature).
	ErrMissingColumns = errors.New("metadata: missing required columns")

	// ErrEmptyMapping indicates a mapping with no entries.
	ErrEmptyMapping = errors.New("metadata: empty mapping")

	// ErrUnknownFeature indicates a feature lookup that is not in the
	// validated mapping.
	ErrUnknownFeature = errors.New("metadata: unknown feature")
)
