package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mathieu/job-hunter/internal/reporter"
)

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Generate spreadsheet reports",
	Long: `Writes spreadsheet reports from the applications table. By default all
report types are written and the status summary is printed. Use --type to
write a single report: applications, contacts, interviews or weekly.`,
	RunE: runReport,
}

var (
	reportType string
	reportDir  string
)

func init() {
	reportCommand.Flags().StringVar(&reportType, "type", "all", "Report to generate (all, applications, contacts, interviews, weekly)")
	reportCommand.Flags().StringVar(&reportDir, "out", defaultReportsDir, "Directory for generated spreadsheets")
	rootCmd.AddCommand(reportCommand)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	rep := reporter.New(st, reportDir, log)

	if reportType == "all" {
		paths, err := rep.WriteAll(ctx)
		if err != nil {
			return fmt.Errorf("report generation failed: %w", err)
		}
		for _, p := range paths {
			fmt.Printf("Wrote %s\n", p)
		}
		summary, err := rep.StatusSummary(ctx)
		if err != nil {
			return fmt.Errorf("status summary failed: %w", err)
		}
		fmt.Printf("\n%s\n", summary)
		return nil
	}

	kind, err := reporter.ParseKind(reportType)
	if err != nil {
		return err
	}
	path, err := rep.Write(ctx, kind)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	fmt.Printf("Wrote %s\n", filepath.Clean(path))
	return nil
}
