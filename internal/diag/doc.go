// Package diag defines the diagnostic model shared by the resolution phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture configuration
//     problems found while resolving types, merging overloads and assembling
//     annotations.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Carry fatal configuration errors as ordinary Go errors (*Error) so they
//     can be wrapped, inspected with errors.As and surfaced by the CLI.
//
// # Taxonomy
//
// Configuration errors (codes 4000-4999) are fatal: malformed container
// syntax, sequences of sequences requested for native conversion, an optional
// parameter preceding a required one, overloads that disagree on staticness,
// ambiguous attribute matches, unknown types. They abort the run.
//
// Lookup misses (unknown conversion or annotation key, absent documentation)
// are not diagnostics at all: lookups return zero values.
//
// Info and warning diagnostics (codes 1000-1999) describe the run itself,
// for example interfaces skipped because the cache already covered them.
//
// # Subjects
//
// A diagnostic names what it is about with a Subject ("Interface",
// "Interface.member" or a raw type name) instead of a source position; the
// database has already been parsed when resolution starts.
package diag
