package pager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/askeland/fsra-register/internal/fetch"
	"github.com/askeland/fsra-register/internal/logger"
	"github.com/askeland/fsra-register/internal/normalize"
	"github.com/askeland/fsra-register/internal/parse"
	"github.com/askeland/fsra-register/internal/record"
)

const (
	// ListingPath is the register's search results page, relative to the
	// configured base URL. DetailPath is the prefix of entity detail pages.
	ListingPath = "/public-registers/fsra/fsf"
	DetailPath  = "/public-registers/fsra/fsf/"

	pageParam = "page"
)

// Fetcher is the fetch capability the driver needs; satisfied by
// *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
}

// State is the driver's terminal state for one run.
type State string

const (
	StateExhausted State = "exhausted" // all pages consumed
	StateFailed    State = "failed"    // stopped on an error
)

// BadLink is a detail page the register returned 404 for. Bad links are
// reported rather than failing the run: the listing record survives
// unenriched.
type BadLink struct {
	Company string `json:"company"`
	URL     string `json:"url"`
	Status  int    `json:"status"`
}

// Result is the outcome of one scrape run.
type Result struct {
	State    State
	Records  []record.Record
	Pages    int // listing pages successfully fetched and parsed
	BadLinks []BadLink
}

// Driver orchestrates fetch → parse → normalize across the paginated result
// set, accumulating records in memory.
type Driver struct {
	fetcher  Fetcher
	table    *normalize.Table
	baseURL  string
	maxPages int
	enrich   bool
}

// Config for a Driver.
type Config struct {
	BaseURL  string // register origin, e.g. "https://www.adgm.com"
	MaxPages int    // safety cap on pagination (default 500)
	Enrich   bool   // fetch each entity's detail page
}

// New creates a Driver using the given fetcher and special-case table.
func New(fetcher Fetcher, table *normalize.Table, cfg Config) *Driver {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 500
	}
	return &Driver{
		fetcher:  fetcher,
		table:    table,
		baseURL:  cfg.BaseURL,
		maxPages: cfg.MaxPages,
		enrich:   cfg.Enrich,
	}
}

// Run walks the result set from page 1 until a page yields zero records.
// The returned Result always carries whatever was accumulated; when the
// returned error is non-nil the Result's State is StateFailed and the error
// names the page and stage that stopped the run.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	result := &Result{State: StateFailed, Records: make([]record.Record, 0)}
	listingURL := d.baseURL + ListingPath

	for page := 1; ; page++ {
		if page > d.maxPages {
			logger.Warn("page cap reached, stopping pagination", logger.Fields{
				"max_pages": d.maxPages,
			})
			break
		}

		params := url.Values{pageParam: []string{strconv.Itoa(page)}}
		body, err := d.fetcher.Get(ctx, listingURL, params)
		if err != nil {
			return result, fmt.Errorf("page %d: %w", page, err)
		}

		records, err := parse.ParseListing(bytes.NewReader(body))
		if err != nil {
			return result, fmt.Errorf("page %d: %w", page, err)
		}
		result.Pages++

		if len(records) == 0 {
			logger.Debug("empty page, pagination exhausted", logger.Fields{"page": page})
			break
		}

		logger.Info("page parsed", logger.Fields{
			"page":    page,
			"records": len(records),
		})

		for _, rec := range records {
			rec = d.table.Apply(rec)
			if err := rec.Validate(); err != nil {
				logger.Warn("record with empty company name kept as-is", logger.Fields{
					"page":    page,
					"licence": rec.LicenceNumber,
				})
			}
			if d.enrich {
				d.enrichRecord(ctx, &rec, result)
			}
			result.Records = append(result.Records, rec)
		}
	}

	result.State = StateExhausted
	return result, nil
}

// enrichRecord fetches and parses the entity's detail page. Detail failures
// never fail the run: 404s are collected as bad links, everything else is
// logged and skipped.
func (d *Driver) enrichRecord(ctx context.Context, rec *record.Record, result *Result) {
	detailURL := d.baseURL + DetailPath + normalize.Slug(rec.CompanyName)
	rec.DetailURL = detailURL

	body, err := d.fetcher.Get(ctx, detailURL, nil)
	if err != nil {
		var fe *fetch.Error
		if errors.As(err, &fe) && fe.NotFound() {
			logger.Warn("detail page not found, slug may be wrong", logger.Fields{
				"company": rec.CompanyName,
				"url":     detailURL,
			})
			result.BadLinks = append(result.BadLinks, BadLink{
				Company: rec.CompanyName,
				URL:     detailURL,
				Status:  fe.Status,
			})
			return
		}
		logger.Warn("detail fetch failed, record kept unenriched", logger.Fields{
			"company": rec.CompanyName,
			"url":     detailURL,
			"error":   err.Error(),
		})
		return
	}

	detail, err := parse.ParseDetail(bytes.NewReader(body))
	if err != nil {
		logger.Warn("detail parse failed, record kept unenriched", logger.Fields{
			"company": rec.CompanyName,
			"url":     detailURL,
			"error":   err.Error(),
		})
		return
	}

	rec.Conditions = detail.Conditions
	rec.Activities = detail.Activities
}
