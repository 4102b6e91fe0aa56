package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinlbrj23/onyotpisot/internal/browser"
	"github.com/justinlbrj23/onyotpisot/internal/config"
	"github.com/justinlbrj23/onyotpisot/internal/pipeline"
	"github.com/justinlbrj23/onyotpisot/internal/sheets"
	_ "github.com/justinlbrj23/onyotpisot/internal/sites/bcpao"
	_ "github.com/justinlbrj23/onyotpisot/internal/sites/beacon"
	_ "github.com/justinlbrj23/onyotpisot/internal/sites/leepa"
	_ "github.com/justinlbrj23/onyotpisot/internal/sites/truepeople"
)

var version = "dev"

var (
	configPath  string
	siteName    string
	showUI      bool
	proxyURL    string
	timeout     time.Duration
	snapshotDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "onyotpisot",
		Short:   "Scrape property records into a spreadsheet, one row at a time",
		Version: version,
		Long: `onyotpisot reads input keys (parcel IDs, owner names, or pre-built URLs)
from a spreadsheet column, runs each one through a site adapter's search
flow in a headless browser, and writes the extracted fields back to fixed
cells on the same row. Row failures are logged and skipped; the batch
always runs to the end.`,
		Example: `  # Run the Brevard County batch from the default config
  onyotpisot --site bcpao

  # Watch the browser while debugging a selector
  onyotpisot --site leepa --showui --config leepa.json5

  # Keep markdown dumps of failed rows
  onyotpisot --site truepeople --snapshots ./snapshots`,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.json5", "Config file path (JSON5; a .local. override next to it is merged in)")
	rootCmd.Flags().StringVar(&siteName, "site", "", "Site adapter to run (overrides config)")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("ONYOT_PROXY"), "Proxy URL, defaults to ONYOT_PROXY env var")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Per-wait timeout override")
	rootCmd.Flags().StringVar(&snapshotDir, "snapshots", "", "Directory for failed-row page dumps (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	if siteName != "" {
		cfg.Site = siteName
	}
	if proxyURL != "" {
		cfg.Browser.ProxyURL = proxyURL
	}
	if snapshotDir != "" {
		cfg.SnapshotDir = snapshotDir
	}

	site, ok := pipeline.Lookup(cfg.Site)
	if !ok {
		return fmt.Errorf("unknown site %q (have: %s)", cfg.Site, strings.Join(sortedNames(), ", "))
	}
	if timeout == 0 {
		timeout = cfg.Timeout
	}
	if timeout > 0 {
		site.NavTimeout = timeout
		site.InputTimeout = timeout
		site.ResultTimeout = timeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, sink, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	// Fail fast when the target site is down: no point launching a
	// browser per row against a dead host.
	if err := pipeline.Probe(ctx, site.SearchURL, 15*time.Second); err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Site:   site,
		Source: source,
		Sink:   sink,
		Factory: pipeline.RodFactory(browser.Config{
			Bin:        cfg.Browser.Bin,
			ProfileDir: cfg.Browser.ProfileDir,
			Headless:   cfg.Browser.IsHeadless() && !showUI,
			ProxyURL:   cfg.Browser.ProxyURL,
			NoSandbox:  cfg.Browser.NoSandbox,
		}),
		KeyRange:    cfg.Sheet.KeyRange,
		CheckRange:  cfg.Sheet.CheckRange,
		SnapshotDir: cfg.SnapshotDir,
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	// Per-row failures are not a process failure; the batch ran.
	fmt.Fprintf(os.Stderr, "done=%d failed=%d skipped=%d\n", summary.Done, summary.Failed, summary.Skipped)
	return nil
}

// openBackend builds the configured spreadsheet backend. Both backends
// implement Source and Sink over the same sheet.
func openBackend(ctx context.Context, cfg config.Config) (sheets.Source, sheets.Sink, func(), error) {
	switch cfg.Sheet.Backend {
	case "", "google":
		g, err := sheets.NewGoogle(ctx, cfg.Sheet.Google)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open google sheets backend: %w", err)
		}
		return g, g, func() {}, nil
	case "excel":
		e, err := sheets.OpenExcel(cfg.Sheet.Workbook, cfg.Sheet.SheetName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open workbook backend: %w", err)
		}
		return e, e, func() { _ = e.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown sheet backend %q", cfg.Sheet.Backend)
	}
}

func sortedNames() []string {
	names := pipeline.Names()
	sort.Strings(names)
	return names
}
