package normalize

import (
	"regexp"
	"strings"
)

// slugCases maps register names whose detail-page slug does not follow the
// generic formatting rules. Keys use the same lookup-key rule as the name
// table. These were collected by hand from 404s on the live register.
var slugCases = map[string]string{
	"abrdn investments middle east limited":       "aberdeen-asset-middle-east-limited",
	"xanara me ltd":                               "xanara-management-limited",
	"ss&c financial services middle east limited": "ssandc-financial-services-middle-east-limited",
	"perella weinberg partners uk llp - branch":   "perella-weinberg-partners-uk-llp",
	"mubadala (re)insurance limited":              "mubadala-re-insurance-limited",
	"bitmena limited":                             "venomex-limited",
	"bank lombard odier & co. limited":            "bank-lombard-odier--co-limited",
	"at capital markets limited (withdrawn)":      "at-capital-markets-limited",
	"worldwide cash express limited":              "worldwide-cash-express",
	"bnp paribas s.a.":                            "bnp-paribas-sa",
	"shorooq partners ltd":                        "shorooq-vc-partners-ltd",
	"unicredit s.p.a.":                            "unicredit-spa",
}

var (
	nonSlugChars  = regexp.MustCompile(`[^\w\s-]`)
	spacesHyphens = regexp.MustCompile(`[\s-]+`)
)

// Slug converts a company name into the path segment the register uses for
// the entity's detail page. Known exceptions come from slugCases; the generic
// rule lower-cases the name, spells out "&", turns periods into hyphens,
// drops remaining punctuation, and collapses whitespace and hyphen runs into
// single hyphens.
func Slug(name string) string {
	if slug, ok := slugCases[lookupKey(name)]; ok {
		return slug
	}

	s := strings.ToLower(collapseSpace(name))
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, ".", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = spacesHyphens.ReplaceAllString(s, "-")
	return strings.TrimRight(s, "-")
}
