package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathieu/job-hunter/internal/pipeline"
)

var searchCommand = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search job boards and record new postings",
	Long: `Searches the configured job boards and records every new posting as a
pending application. With no keyword argument the configured SEARCH_QUERIES
are used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	searchLocation string
	searchPages    int
)

func init() {
	searchCommand.Flags().StringVarP(&searchLocation, "location", "l", "", "Target location (default from TARGET_REGION)")
	searchCommand.Flags().IntVar(&searchPages, "pages", 0, "Result pages to fetch per query")
	rootCmd.AddCommand(searchCommand)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	queries := cfg.Queries()
	if len(args) == 1 {
		queries = []string{args[0]}
	}
	location := cfg.TargetRegion
	if cmd.Flags().Changed("location") {
		location = searchLocation
	}

	agg, err := newAggregator(newFetchClient(cfg, log), searchPages, log)
	if err != nil {
		return err
	}

	listings, err := agg.SearchAll(ctx, queries, location)
	if err != nil {
		return fmt.Errorf("job search failed: %w", err)
	}

	fmt.Printf("Found %d jobs:\n\n", len(listings))
	for i, job := range listings {
		fmt.Printf("%d. %s at %s\n", i+1, job.Title, job.Company)
		fmt.Printf("   Location: %s\n", job.Location)
		fmt.Printf("   URL: %s\n\n", job.URL)
	}

	created, err := pipeline.PersistListings(ctx, st, log, listings)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %d new applications\n", created)
	return nil
}
