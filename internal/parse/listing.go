package parse

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/askeland/fsra-register/internal/record"
)

// ErrNoListing means the page did not contain the register's listing
// container at all. This signals changed or unrecognized markup and must be
// treated as a hard failure, never as an empty result set.
var ErrNoListing = errors.New("register listing container not found")

// Listing cells are labelled for the register's responsive layout; fields
// are extracted by label rather than column position so column reordering
// doesn't silently shift data.
const (
	labelCompanyName   = "Company Name"
	labelLicenceNumber = "Licence Number"
	labelStatus        = "Status"
	labelEntityType    = "Entity Type"
	labelAddress       = "Address"
	labelLicensedDate  = "Licensed Date"
)

// ParseListing extracts all records from one listing page. The returned
// slice is in document order and may be empty (a valid zero-result page).
func ParseListing(r io.Reader) ([]record.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("table.register-table").First()
	if table.Length() == 0 {
		return nil, ErrNoListing
	}

	records := make([]record.Record, 0)
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		records = append(records, record.Record{
			CompanyName:   cellText(row, labelCompanyName),
			LicenceNumber: cellText(row, labelLicenceNumber),
			Status:        cellText(row, labelStatus),
			EntityType:    cellText(row, labelEntityType),
			Address:       cellText(row, labelAddress),
			LicensedDate:  cellText(row, labelLicensedDate),
		})
	})
	return records, nil
}

// cellText returns the trimmed text of the row's cell carrying the given
// data-label, or "" when the cell is missing.
func cellText(row *goquery.Selection, label string) string {
	cell := row.Find(fmt.Sprintf("td[data-label='%s']", label)).First()
	return strings.TrimSpace(cell.Text())
}
