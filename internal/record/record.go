package record

import (
	"fmt"
	"strings"
)

// Licence statuses observed on the register. The register occasionally
// introduces new wording, so Status is kept as a plain string and these
// constants only cover the known set.
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusRevoked   = "Revoked"
	StatusWithdrawn = "Withdrawn"
)

// Activity is one regulated activity listed on an entity's detail page.
// Dates are kept as the register's display strings ("12 March 2024");
// either date may be empty.
type Activity struct {
	Name          string `json:"name"`
	EffectiveDate string `json:"effective_date,omitempty"`
	WithdrawnDate string `json:"withdrawn_date,omitempty"`
}

// Record is one entity scraped from the register listing, optionally
// enriched from its detail page.
type Record struct {
	CompanyName   string     `json:"company_name"`
	LicenceNumber string     `json:"licence_number"`
	Status        string     `json:"status"`
	EntityType    string     `json:"entity_type"`
	Address       string     `json:"address"`
	LicensedDate  string     `json:"licensed_date"`
	Conditions    string     `json:"conditions,omitempty"`
	Activities    []Activity `json:"activities,omitempty"`
	DetailURL     string     `json:"detail_url,omitempty"`
}

// Key returns the de-duplication key for the record. Records without a
// licence number have no key and are never considered duplicates of each
// other.
func (r Record) Key() string {
	return strings.TrimSpace(r.LicenceNumber)
}

// Validate reports whether the record satisfies the post-normalization
// invariants. It is called after normalization, before export.
func (r Record) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return fmt.Errorf("record %q: empty company name", r.LicenceNumber)
	}
	return nil
}
