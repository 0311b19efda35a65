package normalize

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/askeland/fsra-register/internal/record"
	"gopkg.in/yaml.v3"
)

// defaultCases maps known misrendered register names to their canonical
// display form. Keys are lookup keys (lower-cased, whitespace collapsed, see
// lookupKey); values are substituted verbatim on a hit.
//
// Every canonical form whose own lookup key differs from its entry key also
// appears as a self-mapping, so that re-normalizing an already-corrected name
// is a no-op.
var defaultCases = map[string]string{
	"abrdn investments middle east limited":            "Aberdeen Asset Middle East Limited",
	"aberdeen asset middle east limited":               "Aberdeen Asset Middle East Limited",
	"xanara me ltd":                                    "Xanara Management Limited",
	"xanara management limited":                        "Xanara Management Limited",
	"ss&c financial services middle east limited":      "SS&C Financial Services Middle East Limited",
	"perella weinberg partners uk llp - branch":        "Perella Weinberg Partners UK LLP",
	"perella weinberg partners uk llp":                 "Perella Weinberg Partners UK LLP",
	"mubadala (re)insurance limited":                   "Mubadala (Re)insurance Limited",
	"bitmena limited":                                  "Venomex Limited",
	"venomex limited":                                  "Venomex Limited",
	"bank lombard odier & co. limited":                 "Bank Lombard Odier & Co. Limited",
	"at capital markets limited (withdrawn)":           "AT Capital Markets Limited",
	"at capital markets limited":                       "AT Capital Markets Limited",
	"worldwide cash express limited":                   "Worldwide Cash Express",
	"worldwide cash express":                           "Worldwide Cash Express",
	"bnp paribas s.a.":                                 "BNP Paribas S.A.",
	"shorooq partners ltd":                             "Shorooq VC Partners Ltd",
	"shorooq vc partners ltd":                          "Shorooq VC Partners Ltd",
	"unicredit s.p.a.":                                 "UniCredit S.p.A.",
}

// Table holds the special-case mapping. It is populated once at startup
// (built-ins plus an optional override file) and read-only afterwards.
type Table struct {
	entries map[string]string
}

// Default returns a Table containing the built-in special cases.
func Default() *Table {
	entries := make(map[string]string, len(defaultCases))
	for k, v := range defaultCases {
		entries[k] = v
	}
	return &Table{entries: entries}
}

// LoadOverrides merges a YAML file of raw-name → canonical-name pairs over
// the built-in table. File keys are run through the same lookup-key rule as
// scraped names, and each canonical form is self-mapped to keep Name
// idempotent. Intended to be called once during startup.
func (t *Table) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading alias overrides: %w", err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing alias overrides %s: %w", path, err)
	}

	for raw, canonical := range overrides {
		canonical = collapseSpace(canonical)
		if canonical == "" {
			continue
		}
		t.entries[lookupKey(raw)] = canonical
		t.entries[lookupKey(canonical)] = canonical
	}
	return nil
}

// Canonical looks up a raw name in the special-case table.
func (t *Table) Canonical(raw string) (string, bool) {
	canonical, ok := t.entries[lookupKey(raw)]
	return canonical, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Name normalizes a scraped company name. Special-case hits return the
// canonical form verbatim; everything else is trimmed, has internal
// whitespace collapsed, and gets the first letter of each word upper-cased
// (the remainder of each word is left alone, so acronyms survive).
//
// Name is idempotent: Name(Name(s)) == Name(s) for all s.
func (t *Table) Name(raw string) string {
	if canonical, ok := t.Canonical(raw); ok {
		return canonical
	}
	return titleCase(collapseSpace(raw))
}

// Apply returns a copy of rec with the company name normalized. It never
// touches any other field.
func (t *Table) Apply(rec record.Record) record.Record {
	rec.CompanyName = t.Name(rec.CompanyName)
	return rec
}

// lookupKey is the documented matching rule for the special-case table:
// trim, collapse internal whitespace, lower-case.
func lookupKey(s string) string {
	return strings.ToLower(collapseSpace(s))
}

// collapseSpace trims s and collapses any run of whitespace to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase upper-cases the first alphabetic rune of each space-separated
// word, leaving the rest of the word untouched.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	words := strings.Split(s, " ")
	for i, word := range words {
		runes := []rune(word)
		for j, r := range runes {
			if unicode.IsLetter(r) {
				runes[j] = unicode.ToUpper(r)
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
