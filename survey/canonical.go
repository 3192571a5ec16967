// SPDX-License-Identifier: MIT

package survey

import (
	"regexp"
	"strings"
)

// Compiled once; Canonicalize is called for every header cell of every file.
var (
	nonWordRun    = regexp.MustCompile(`[^a-z0-9]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// Canonicalize normalizes a column name so raw data and metadata match
// reliably regardless of how the export tool mangled them.
//
// Rules, applied in order:
//  1. strip straight and smart quotes,
//  2. lower-case,
//  3. collapse every non-alphanumeric run into a single underscore,
//  4. trim leading/trailing underscores.
//
// Examples:
//
//	Canonicalize("Q24_1")                  == "q24_1"
//	Canonicalize("Duration (in seconds)")  == "duration_in_seconds"
//	Canonicalize("nervous/stressed")       == "nervous_stressed"
//
// Deterministic and pure; both survey.ReadCSV and metadata.ReadCSV apply it,
// which is what makes the old_name ↔ raw column join reliable.
func Canonicalize(name string) string {
	s := strings.NewReplacer("’", "", "‘", "", "'", "", `"`, "").Replace(name)
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordRun.ReplaceAllString(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")

	return strings.Trim(s, "_")
}
