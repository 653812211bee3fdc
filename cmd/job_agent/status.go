package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathieu/job-hunter/internal/reporter"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Print the application status summary",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCommand)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	rep := reporter.New(st, defaultReportsDir, log)
	summary, err := rep.StatusSummary(ctx)
	if err != nil {
		return fmt.Errorf("status summary failed: %w", err)
	}
	fmt.Println(summary)
	return nil
}
