package normalize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/askeland/fsra-register/internal/record"
)

func TestNameSpecialCases(t *testing.T) {
	table := Default()

	tests := []struct {
		raw  string
		want string
	}{
		{"Bitmena Limited", "Venomex Limited"},
		{"bitmena limited", "Venomex Limited"},
		{"  BITMENA   LIMITED  ", "Venomex Limited"},
		{"Abrdn Investments Middle East Limited", "Aberdeen Asset Middle East Limited"},
		{"SS&C Financial Services Middle East Limited", "SS&C Financial Services Middle East Limited"},
		{"Perella Weinberg Partners UK LLP - branch", "Perella Weinberg Partners UK LLP"},
		{"AT Capital Markets Limited (Withdrawn)", "AT Capital Markets Limited"},
		{"unicredit s.p.a.", "UniCredit S.p.A."},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := table.Name(tt.raw); got != tt.want {
				t.Errorf("Name(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNameGeneric(t *testing.T) {
	table := Default()

	tests := []struct {
		raw  string
		want string
	}{
		{"acme trading llc", "Acme Trading Llc"},
		{"  first   gulf  capital  ", "First Gulf Capital"},
		{"Mubadala (Re)insurance Limited", "Mubadala (Re)insurance Limited"},
		{"ALREADY NORMALIZED NAME", "ALREADY NORMALIZED NAME"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := table.Name(tt.raw); got != tt.want {
				t.Errorf("Name(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Normalization must be idempotent: re-normalizing any output is a no-op.
func TestNameIdempotent(t *testing.T) {
	table := Default()

	inputs := []string{
		"acme trading llc",
		"  bitmena   limited ",
		"Shorooq Partners Ltd",
		"Worldwide Cash Express Limited",
		"AT Capital Markets Limited (Withdrawn)",
		"mubadala (re)insurance limited",
		"some unknown firm l.l.c.",
	}
	for k := range defaultCases {
		inputs = append(inputs, k)
	}

	for _, raw := range inputs {
		once := table.Name(raw)
		twice := table.Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestApplyOnlyTouchesCompanyName(t *testing.T) {
	table := Default()

	rec := record.Record{
		CompanyName:   "bitmena limited",
		LicenceNumber: "FSP-0002",
		Status:        record.StatusRevoked,
		Address:       "ADGM Square",
	}
	got := table.Apply(rec)

	if got.CompanyName != "Venomex Limited" {
		t.Errorf("expected normalized name, got %q", got.CompanyName)
	}
	if got.LicenceNumber != rec.LicenceNumber || got.Status != rec.Status || got.Address != rec.Address {
		t.Errorf("Apply mutated fields other than the company name: %+v", got)
	}
	if rec.CompanyName != "bitmena limited" {
		t.Errorf("Apply mutated its input: %+v", rec)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	yaml := "acme trading llc: ACME Trading LLC\n\"Old Brand Ltd\": New Brand Limited\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing override file: %v", err)
	}

	table := Default()
	if err := table.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}

	if got := table.Name("acme trading llc"); got != "ACME Trading LLC" {
		t.Errorf("override not applied: got %q", got)
	}
	// Idempotence must hold for overrides too.
	if got := table.Name("ACME Trading LLC"); got != "ACME Trading LLC" {
		t.Errorf("override canonical form not self-mapped: got %q", got)
	}
	if got := table.Name("old   brand ltd"); got != "New Brand Limited" {
		t.Errorf("override lookup-key rule not applied: got %q", got)
	}
	// Built-ins survive a merge.
	if got := table.Name("Bitmena Limited"); got != "Venomex Limited" {
		t.Errorf("built-in case lost after override merge: got %q", got)
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	table := Default()
	if err := table.LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing override file")
	}
}
