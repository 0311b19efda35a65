// Package export writes the accumulated register records to a CSV file.
//
// The column order is fixed (see Columns). Records are de-duplicated by
// licence number, keeping the first occurrence and logging every duplicate.
// Writes are atomic: the table goes to a temp file in the destination
// directory and is renamed into place only once fully written, so the
// destination is never left truncated. An existing destination file is
// overwritten.
package export
