// Package survey models raw questionnaire responses: a respondents × items
// table of bounded ordinal (Likert) values with NaN as the missing marker.
//
// 🚀 What does survey provide?
//
//   - Canonicalize — one normalization rule for column names, applied to both
//     raw data and metadata so the two always join reliably
//     ("Q24_1" → "q24_1", "Duration (in seconds)" → "duration_in_seconds")
//   - Table — immutable-by-convention response storage with missing markers
//   - ReadCSV — header + numeric cells; blanks and non-numeric cells become
//     missing, never zeros
//   - Impute — median / mean / drop strategies for missing cells
//   - ValidateBounds — fail fast on out-of-range ordinal values
//
// The construct aggregator consumes a Table together with a validated
// metadata mapping; nothing downstream ever touches raw items again.
package survey
