// Package pager walks the register's paginated search results.
//
// Pages are fetched strictly one at a time and in order, because the
// register's pagination is keyed by page number per request. The driver stops
// with success on the first page that parses to zero records, and stops with
// failure on any fetch or parse error that survives the fetcher's retries.
// On failure the accumulated records are still returned alongside the error
// so the caller can decide whether a partial export is acceptable.
package pager
