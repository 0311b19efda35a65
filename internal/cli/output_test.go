package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/askeland/fsra-register/internal/pager"
)

func TestWriteSummaryText(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{
		CompletedAt: time.Now().UTC(),
		State:       string(pager.StateExhausted),
		Pages:       12,
		Records:     242,
		Exported:    240,
		Duplicates:  2,
		Output:      "fsra_public_register.csv",
		Duration:    "3m10s",
	}

	if err := WriteSummary(&buf, s, FormatText); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Scraped 242 records from 12 pages in 3m10s.",
		"Exported 240 rows to fsra_public_register.csv",
		"2 duplicate licence numbers dropped",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryTextFailure(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{
		State:    string(pager.StateFailed),
		Pages:    4,
		Records:  80,
		Duration: "1m2s",
		Error:    "page 5: register listing container not found",
	}

	if err := WriteSummary(&buf, s, FormatText); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Run failed after 4 pages") {
		t.Errorf("failure line missing:\n%s", out)
	}
	if !strings.Contains(out, "page 5") {
		t.Errorf("failing page missing:\n%s", out)
	}
	if !strings.Contains(out, "No CSV written.") {
		t.Errorf("no-export notice missing:\n%s", out)
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{
		State:    string(pager.StateExhausted),
		Pages:    2,
		Records:  40,
		Exported: 40,
		Output:   "out.csv",
		Duration: "20s",
		BadLinks: []pager.BadLink{{Company: "Vanished Firm Ltd", URL: "https://x/y", Status: 404}},
	}

	if err := WriteSummary(&buf, s, FormatJSON); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if decoded.Pages != 2 || decoded.Exported != 40 || decoded.Output != "out.csv" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if len(decoded.BadLinks) != 1 || decoded.BadLinks[0].Status != 404 {
		t.Errorf("bad links lost: %+v", decoded.BadLinks)
	}
}

func TestWriteSummaryUnknownFormat(t *testing.T) {
	if err := WriteSummary(&bytes.Buffer{}, &Summary{}, OutputFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
