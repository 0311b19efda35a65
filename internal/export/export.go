package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/askeland/fsra-register/internal/logger"
	"github.com/askeland/fsra-register/internal/record"
)

// Columns is the exported column order.
var Columns = []string{
	"Company Name",
	"Licence Number",
	"Status",
	"Entity Type",
	"Address",
	"Licensed Date",
	"Conditions",
	"Regulated Activities",
}

// Error is a failed export, carrying the attempted destination.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("exporting to %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WriteCSV writes records to path as UTF-8 CSV with a header row,
// de-duplicated by licence number (first occurrence wins). It returns the
// number of rows written. The write is atomic: on any failure the previous
// contents of path are untouched.
func WriteCSV(records []record.Record, path string) (int, error) {
	rows := Dedupe(records)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, &Error{Path: path, Err: fmt.Errorf("creating output directory: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, ".fsra-register-*.csv")
	if err != nil {
		return 0, &Error{Path: path, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns); err != nil {
		tmp.Close()
		return 0, &Error{Path: path, Err: fmt.Errorf("writing header: %w", err)}
	}
	for _, rec := range rows {
		if err := w.Write(row(rec)); err != nil {
			tmp.Close()
			return 0, &Error{Path: path, Err: fmt.Errorf("writing record %q: %w", rec.LicenceNumber, err)}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return 0, &Error{Path: path, Err: fmt.Errorf("flushing: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return 0, &Error{Path: path, Err: fmt.Errorf("closing temp file: %w", err)}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return 0, &Error{Path: path, Err: fmt.Errorf("renaming into place: %w", err)}
	}
	return len(rows), nil
}

// Dedupe drops records whose licence number was already seen, keeping the
// first occurrence and logging each dropped duplicate. Records without a
// licence number are all kept.
func Dedupe(records []record.Record) []record.Record {
	seen := make(map[string]bool, len(records))
	kept := make([]record.Record, 0, len(records))
	for _, rec := range records {
		key := rec.Key()
		if key != "" && seen[key] {
			logger.Warn("duplicate licence number dropped, first occurrence kept", logger.Fields{
				"licence": key,
				"company": rec.CompanyName,
			})
			continue
		}
		if key != "" {
			seen[key] = true
		}
		kept = append(kept, rec)
	}
	return kept
}

// row flattens one record into the fixed column order. Activities collapse
// into a single cell, "; "-separated, each as "Name (effective X; withdrawn
// Y)" with absent dates omitted.
func row(rec record.Record) []string {
	return []string{
		rec.CompanyName,
		rec.LicenceNumber,
		rec.Status,
		rec.EntityType,
		rec.Address,
		rec.LicensedDate,
		rec.Conditions,
		formatActivities(rec.Activities),
	}
}

func formatActivities(activities []record.Activity) string {
	parts := make([]string, 0, len(activities))
	for _, a := range activities {
		var dates []string
		if a.EffectiveDate != "" {
			dates = append(dates, "effective "+a.EffectiveDate)
		}
		if a.WithdrawnDate != "" {
			dates = append(dates, "withdrawn "+a.WithdrawnDate)
		}
		if len(dates) > 0 {
			parts = append(parts, fmt.Sprintf("%s (%s)", a.Name, strings.Join(dates, "; ")))
		} else {
			parts = append(parts, a.Name)
		}
	}
	return strings.Join(parts, "; ")
}
