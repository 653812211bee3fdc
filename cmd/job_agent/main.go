// Package main provides the job-hunter command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_agent",
	Short: "Automated job application agent",
	Long: `job_agent scrapes French job boards for matching postings, looks up company
contact addresses, sends a capped number of application emails per day, and
tracks every application in a local database.

Run without a subcommand it performs one full cycle: scrape, record, enrich,
apply, report.`,
	RunE: runFull,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
