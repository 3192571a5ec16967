// Package metadata implements the frozen item→construct mapping contract.
//
// A mapping table has exactly four meaningful columns:
//
//	old_name    — unique questionnaire item id (canonicalized)
//	feature     — the construct the item contributes to (many-to-one)
//	sub_cluster — fine-grained grouping label
//	cluster     — coarse grouping label, consistent per feature
//
// The table is loaded once at pipeline start, validated in full, and never
// mutated afterwards — structural changes require re-versioning the file,
// not in-process edits. Validate enforces the contract in a fixed order and
// fails before any numeric work begins:
//
//  1. every old_name exists in the raw column set  → ErrSchemaMismatch
//  2. no duplicate (old_name, feature) pair and no
//     item mapped onto two features                → ErrDuplicateMapping
//  3. no identifier-like feature/cluster labels    → ErrIdentifierLeakage
//  4. one cluster label per feature                → ErrInconsistentCluster
//
// The output is a Validated value: an immutable feature → ordered item-list
// grouping that the construct aggregator consumes directly.
package metadata
