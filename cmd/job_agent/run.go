package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathieu/job-hunter/internal/config"
	"github.com/mathieu/job-hunter/internal/pipeline"
	"github.com/mathieu/job-hunter/internal/reporter"
	"github.com/mathieu/job-hunter/internal/store"
)

var (
	runQueries   []string
	runLocation  string
	runPages     int
	runMaxPerDay int
	runDelay     int
	runHeadless  bool
	runVerbose   bool
)

func init() {
	rootCmd.Flags().StringSliceVar(&runQueries, "queries", nil, "Search queries (default from SEARCH_QUERIES)")
	rootCmd.Flags().StringVarP(&runLocation, "location", "l", "", "Target location (default from TARGET_REGION)")
	rootCmd.Flags().IntVar(&runPages, "pages", 0, "Result pages to fetch per query")
	rootCmd.Flags().IntVar(&runMaxPerDay, "max-per-day", 0, "Daily application cap (default from MAX_APPLICATIONS_PER_DAY)")
	rootCmd.Flags().IntVar(&runDelay, "delay", 0, "Seconds between sends (default from APPLICATION_DELAY_SECONDS)")
	rootCmd.Flags().BoolVar(&runHeadless, "headless", false, "Render board pages in a headless browser")
	rootCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
}

// applyRunOverrides folds explicitly set flags over the environment
// configuration. Only flags the user touched win.
func applyRunOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("queries") {
		cfg.SearchQueries = strings.Join(runQueries, ",")
	}
	if cmd.Flags().Changed("location") {
		cfg.TargetRegion = runLocation
	}
	if cmd.Flags().Changed("max-per-day") {
		cfg.MaxPerDay = runMaxPerDay
	}
	if cmd.Flags().Changed("delay") {
		cfg.DelaySeconds = runDelay
	}
	if cmd.Flags().Changed("headless") {
		cfg.HeadlessBrowser = runHeadless
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
}

func runFull(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyRunOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	applicatorSvc, closeGen, err := newApplicator(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	defer closeGen()

	client := newFetchClient(cfg, log)
	agg, err := newAggregator(client, runPages, log)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{
		Store:      st,
		Scrapers:   agg,
		Contacts:   newFinder(ctx, cfg, client, log),
		Applicator: applicatorSvc,
		Reporter:   reporter.New(st, defaultReportsDir, log),
		Logger:     log,
	}
	_, err = pipeline.Run(ctx, deps, pipeline.Options{
		Queries:  cfg.Queries(),
		Location: cfg.TargetRegion,
	})
	return err
}
