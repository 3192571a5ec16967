// SPDX-License-Identifier: MIT
// Package metadata: the contract validator. Pure function of its inputs —
// no side effects beyond the returned Validated value.

package metadata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/psymetrika/factorboot/survey"
)

// identifierTokens are label tokens that indicate a direct identifier.
// Matching is token-wise on canonicalized labels, so "relationship" does not
// trip over "ip".
var identifierTokens = map[string]struct{}{
	"ip":        {},
	"geo":       {},
	"latitude":  {},
	"longitude": {},
	"email":     {},
	"address":   {},
	"phone":     {},
	"zip":       {},
	"postcode":  {},
}

// Validated is the immutable outcome of a successful contract check:
// the entries plus the feature → ordered item-list grouping. Construct it
// only through Validate.
type Validated struct {
	entries  []Entry
	features []string            // first-appearance order
	items    map[string][]string // feature → contributing old_names, file order
}

// Validate enforces the mapping contract against the raw column set.
//
// Checks run in a fixed order; the first violated rule aborts:
//  1. Schema: every OldName ∈ rawCols, else ErrSchemaMismatch with the full
//     sorted offender list (matching what the original pipeline reports).
//  2. Uniqueness: no repeated (OldName, Feature) pair and no OldName mapped
//     onto two different features, else ErrDuplicateMapping.
//  3. Leakage: no identifier-like token in Feature or Cluster labels, else
//     ErrIdentifierLeakage.
//  4. Consistency: entries sharing a Feature carry one Cluster label, else
//     ErrInconsistentCluster.
//
// Output grouping is deterministic: features in first-appearance order,
// items per feature in file order.
// Complexity: O(n) over entries (plus O(k log k) to sort offender lists).
func Validate(m Mapping, rawCols map[string]struct{}) (*Validated, error) {
	if len(m) == 0 {
		return nil, ErrEmptyMapping
	}

	// Rule 1: schema alignment.
	var missing []string
	for _, e := range m {
		if _, ok := rawCols[e.OldName]; !ok {
			missing = append(missing, e.OldName)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrSchemaMismatch)
	}

	// Rule 2: many-to-one uniqueness.
	pairSeen := make(map[[2]string]struct{}, len(m))
	featureOf := make(map[string]string, len(m))
	for _, e := range m {
		pair := [2]string{e.OldName, e.Feature}
		if _, dup := pairSeen[pair]; dup {
			return nil, fmt.Errorf("(%s, %s): %w", e.OldName, e.Feature, ErrDuplicateMapping)
		}
		pairSeen[pair] = struct{}{}
		if prev, seen := featureOf[e.OldName]; seen && prev != e.Feature {
			return nil, fmt.Errorf("item %s mapped to %s and %s: %w", e.OldName, prev, e.Feature, ErrDuplicateMapping)
		}
		featureOf[e.OldName] = e.Feature
	}

	// Rule 3: identifier leakage.
	for _, e := range m {
		if tok, leak := identifierLike(e.Feature); leak {
			return nil, fmt.Errorf("feature %q (token %q): %w", e.Feature, tok, ErrIdentifierLeakage)
		}
		if tok, leak := identifierLike(e.Cluster); leak {
			return nil, fmt.Errorf("cluster %q (token %q): %w", e.Cluster, tok, ErrIdentifierLeakage)
		}
	}

	// Rule 4: cluster consistency per feature.
	clusterOf := make(map[string]string, len(m))
	for _, e := range m {
		if prev, seen := clusterOf[e.Feature]; seen && prev != e.Cluster {
			return nil, fmt.Errorf("feature %s has clusters %q and %q: %w", e.Feature, prev, e.Cluster, ErrInconsistentCluster)
		}
		clusterOf[e.Feature] = e.Cluster
	}

	// Build the deterministic grouping.
	v := &Validated{
		entries: append([]Entry(nil), m...),
		items:   make(map[string][]string, len(m)),
	}
	for _, e := range m { // first-appearance feature order, file item order
		if _, seen := v.items[e.Feature]; !seen {
			v.features = append(v.features, e.Feature)
		}
		v.items[e.Feature] = append(v.items[e.Feature], e.OldName)
	}

	return v, nil
}

// identifierLike reports whether any canonical token of label is a known
// identifier token, returning the offender.
func identifierLike(label string) (string, bool) {
	for _, tok := range strings.Split(survey.Canonicalize(label), "_") {
		if _, bad := identifierTokens[tok]; bad {
			return tok, true
		}
	}

	return "", false
}

// Features returns the construct names in first-appearance order (a copy).
func (v *Validated) Features() []string {
	out := make([]string, len(v.features))
	copy(out, v.features)

	return out
}

// Items returns the ordered contributing item names for a feature (a copy).
// Errors: ErrUnknownFeature.
func (v *Validated) Items(feature string) ([]string, error) {
	items, ok := v.items[feature]
	if !ok {
		return nil, fmt.Errorf("%q: %w", feature, ErrUnknownFeature)
	}
	out := make([]string, len(items))
	copy(out, items)

	return out, nil
}

// Entries returns a copy of the validated entries in file order.
func (v *Validated) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)

	return out
}

// Len returns the number of validated entries.
func (v *Validated) Len() int { return len(v.entries) }
