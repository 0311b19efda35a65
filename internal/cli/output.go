package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/askeland/fsra-register/internal/pager"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Summary describes one scrape run for the operator.
type Summary struct {
	CompletedAt time.Time       `json:"completed_at"`
	State       string          `json:"state"`
	Pages       int             `json:"pages"`
	Records     int             `json:"records"`
	Exported    int             `json:"exported,omitempty"`
	Duplicates  int             `json:"duplicates,omitempty"`
	Output      string          `json:"output,omitempty"`
	BadLinks    []pager.BadLink `json:"bad_links,omitempty"`
	Duration    string          `json:"duration"`
	Error       string          `json:"error,omitempty"`
}

// WriteSummary writes the run summary in the given format.
func WriteSummary(w io.Writer, s *Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatText:
		return writeText(w, s)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeText(w io.Writer, s *Summary) error {
	if s.Error != "" {
		fmt.Fprintf(w, "Run failed after %d pages: %s\n", s.Pages, s.Error)
	} else {
		fmt.Fprintf(w, "Scraped %d records from %d pages in %s.\n", s.Records, s.Pages, s.Duration)
	}

	if s.Output != "" {
		fmt.Fprintf(w, "Exported %d rows to %s", s.Exported, s.Output)
		if s.Duplicates > 0 {
			fmt.Fprintf(w, " (%d duplicate licence numbers dropped)", s.Duplicates)
		}
		fmt.Fprintln(w)
	} else if s.Error != "" {
		fmt.Fprintln(w, "No CSV written.")
	}

	if len(s.BadLinks) > 0 {
		fmt.Fprintf(w, "\n%d detail pages returned 404:\n", len(s.BadLinks))
		for _, link := range s.BadLinks {
			fmt.Fprintf(w, "  %s: %s\n", link.Company, link.URL)
		}
	}
	return nil
}
