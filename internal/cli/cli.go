package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/askeland/fsra-register/internal/config"
	"github.com/askeland/fsra-register/internal/export"
	"github.com/askeland/fsra-register/internal/fetch"
	"github.com/askeland/fsra-register/internal/logger"
	"github.com/askeland/fsra-register/internal/normalize"
	"github.com/askeland/fsra-register/internal/notify"
	"github.com/askeland/fsra-register/internal/pager"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutput       string
	flagMaxPages     int
	flagDetails      bool
	flagFormat       string
	flagAllowPartial bool
	flagVerbose      bool
	flagDryRun       bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsra-register",
		Short: "Export the ADGM FSRA public register to CSV",
		Long: `Scrapes the ADGM FSRA public register page by page, normalizes company
names against a known-alias table, optionally enriches each entity from its
detail page, and writes one de-duplicated CSV.`,
		SilenceUsage: true,
		RunE:         runExport,
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "CSV destination path (default from FSRA_OUTPUT)")
	cmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "Pagination safety cap (default from FSRA_MAX_PAGES)")
	cmd.Flags().BoolVar(&flagDetails, "details", true, "Enrich records from entity detail pages")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagAllowPartial, "allow-partial", false, "Export accumulated records even when the run fails")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Scrape but write no CSV and send no notifications")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flagOutput != "" {
		cfg.OutputPath = flagOutput
	}
	if flagMaxPages > 0 {
		cfg.MaxPages = flagMaxPages
	}

	table := normalize.Default()
	if cfg.AliasFile != "" {
		if err := table.LoadOverrides(cfg.AliasFile); err != nil {
			return fmt.Errorf("loading alias file: %w", err)
		}
		logger.Info("alias overrides loaded", logger.Fields{
			"file":    cfg.AliasFile,
			"entries": table.Len(),
		})
	}

	notifier := newNotifier(cfg)

	client := fetch.New(fetch.Config{
		Timeout:         cfg.Timeout,
		UserAgent:       cfg.UserAgent,
		MaxRetries:      cfg.Retries,
		RequestInterval: cfg.RequestInterval,
	})

	driver := pager.New(client, table, pager.Config{
		BaseURL:  cfg.BaseURL,
		MaxPages: cfg.MaxPages,
		Enrich:   flagDetails,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting register scrape", logger.Fields{
		"base_url": cfg.BaseURL,
		"details":  flagDetails,
	})
	start := time.Now()

	result, runErr := driver.Run(ctx)
	elapsed := time.Since(start).Round(time.Second)

	summary := &Summary{
		CompletedAt: time.Now().UTC(),
		State:       string(result.State),
		Pages:       result.Pages,
		Records:     len(result.Records),
		BadLinks:    result.BadLinks,
		Duration:    elapsed.String(),
	}

	notifyBadLinks(ctx, notifier, result.BadLinks)

	if runErr != nil {
		summary.Error = runErr.Error()
		if flagAllowPartial && !flagDryRun && len(result.Records) > 0 {
			if err := writeCSV(result, cfg.OutputPath, summary); err != nil {
				return err
			}
			logger.Warn("run failed, partial export written", logger.Fields{
				"records": summary.Exported,
				"output":  cfg.OutputPath,
			})
		} else {
			logger.Warn("run failed, accumulated records discarded", logger.Fields{
				"records": len(result.Records),
			})
		}
		publish(ctx, notifier, notify.Message{
			Title:    "FSRA register export failed",
			Body:     fmt.Sprintf("Run failed after %s: %v", elapsed, runErr),
			Priority: "5",
			Tags:     []string{"warning", "fsra-register"},
		})
		WriteSummary(os.Stdout, summary, format)
		return fmt.Errorf("scrape failed: %w", runErr)
	}

	if !flagDryRun {
		if err := writeCSV(result, cfg.OutputPath, summary); err != nil {
			publish(ctx, notifier, notify.Message{
				Title:    "FSRA register export failed",
				Body:     fmt.Sprintf("CSV write failed: %v", err),
				Priority: "5",
				Tags:     []string{"warning", "fsra-register"},
			})
			return err
		}
	}

	publish(ctx, notifier, notify.Message{
		Title:    "FSRA register export complete",
		Body:     fmt.Sprintf("Exported %d records from %d pages in %s.", summary.Exported, summary.Pages, elapsed),
		Priority: "4",
		Tags:     []string{"white_check_mark", "fsra-register"},
	})

	if err := WriteSummary(os.Stdout, summary, format); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// writeCSV writes the de-duplicated export, recording the exported row count
// on the summary.
func writeCSV(result *pager.Result, path string, summary *Summary) error {
	n, err := export.WriteCSV(result.Records, path)
	if err != nil {
		return err
	}
	summary.Exported = n
	summary.Duplicates = len(result.Records) - n
	summary.Output = path

	logger.Info("export written", logger.Fields{
		"output":  path,
		"records": n,
	})
	return nil
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if flagDryRun {
		return notify.DryRun{Out: os.Stderr}
	}
	if cfg.NtfyURL == "" {
		logger.Info("NTFY_URL not configured, notifications disabled", nil)
		return notify.Noop{}
	}
	n, err := notify.NewNtfy(cfg.NtfyURL)
	if err != nil {
		logger.Warn("notifier disabled", logger.Fields{"error": err.Error()})
		return notify.Noop{}
	}
	return n
}

func notifyBadLinks(ctx context.Context, notifier notify.Notifier, badLinks []pager.BadLink) {
	for _, link := range badLinks {
		publish(ctx, notifier, notify.Message{
			Title:    fmt.Sprintf("Incorrect link for %s", link.Company),
			Body:     fmt.Sprintf("Got %d for %s at %s. Check the slug.", link.Status, link.Company, link.URL),
			Priority: "urgent",
			Tags:     []string{"warning", "fsra-register", "incorrect-link"},
		})
	}
}

// publish sends best-effort: notification failures are logged, never fatal.
func publish(ctx context.Context, notifier notify.Notifier, msg notify.Message) {
	if err := notifier.Publish(ctx, msg); err != nil {
		logger.Warn("notification failed", logger.Fields{
			"title": msg.Title,
			"error": err.Error(),
		})
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
