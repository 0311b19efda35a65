// Package record defines the typed representation of one FSRA public register
// entry.
//
// Records are constructed by the page parser, normalized exactly once by the
// name normalizer, and then treated as immutable until they are exported. The
// licence number acts as the natural key for de-duplication across pages.
package record
