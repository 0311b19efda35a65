// Package cli implements the fsra-register command.
//
// The command runs one scrape of the FSRA public register and writes the
// de-duplicated CSV export. A text or JSON run summary goes to stdout; logs
// go to stderr. Exit code 0 means the full register was exported, 1 means
// the run failed (in which case no CSV is written unless --allow-partial was
// given).
package cli
