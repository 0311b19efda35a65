package parse

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/askeland/fsra-register/internal/record"
)

// Detail holds the fields scraped from an entity's detail page.
type Detail struct {
	Conditions string
	Activities []record.Activity
}

// The register renders dates as "12 March 2024".
var datePattern = regexp.MustCompile(`^\d{1,2} \w+ \d{4}`)

// ParseDetail extracts regulated activities and conditions from an entity's
// detail page. Detail pages vary more than the listing does, so missing
// sections yield empty fields rather than an error; enrichment is
// best-effort by design.
func ParseDetail(r io.Reader) (Detail, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Detail{}, fmt.Errorf("parsing HTML: %w", err)
	}

	return Detail{
		Conditions: parseConditions(doc),
		Activities: parseActivities(doc),
	}, nil
}

// parseActivities walks the regulated-activities accordion. Each accordion
// entry flattens to a sequence of lines: the activity name, optionally
// followed by an effective date and a withdrawn date.
func parseActivities(doc *goquery.Document) []record.Activity {
	container := doc.Find("#raTableContainer_fsfdetail").First()
	if container.Length() == 0 {
		return nil
	}

	var lines []string
	container.Find("div.opn-accord").Each(func(i int, sel *goquery.Selection) {
		for _, line := range strings.Split(sel.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})

	var activities []record.Activity
	for i := 0; i < len(lines); i++ {
		activity := record.Activity{Name: lines[i]}
		if i+1 < len(lines) && isDate(lines[i+1]) {
			activity.EffectiveDate = lines[i+1]
			i++
		}
		if i+1 < len(lines) && isDate(lines[i+1]) {
			activity.WithdrawnDate = lines[i+1]
			i++
		}
		activities = append(activities, activity)
	}
	return activities
}

// parseConditions reads the special-conditions table. The first non-blank
// line is the section heading; the condition text follows it.
func parseConditions(doc *goquery.Document) string {
	table := doc.Find(".fsp-first-table.specialinfo-table").First()
	if table.Length() == 0 {
		return ""
	}

	var lines []string
	table.Find("div.container").Each(func(i int, sel *goquery.Selection) {
		for _, line := range strings.Split(sel.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})

	if len(lines) < 2 {
		return ""
	}
	return lines[1]
}

func isDate(s string) bool {
	return datePattern.MatchString(s)
}
