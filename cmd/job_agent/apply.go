package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathieu/job-hunter/internal/applicator"
	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

var applyCommand = &cobra.Command{
	Use:   "apply",
	Short: "Send applications for pending records",
	Long: `Sends cover letter emails for pending applications, oldest first,
respecting the daily cap and the delay between sends. With --company only
the oldest pending record for that company is sent.`,
	RunE: runApply,
}

var applyCompany string

func init() {
	applyCommand.Flags().StringVar(&applyCompany, "company", "", "Apply to a single company's pending record")
	rootCmd.AddCommand(applyCommand)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	app, closeGen, err := newApplicator(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	defer closeGen()

	if applyCompany != "" {
		return applyToCompany(ctx, st, app, applyCompany)
	}

	result, err := app.Run(ctx)
	if err != nil {
		return fmt.Errorf("application dispatch failed: %w", err)
	}

	fmt.Printf("Sent %d applications (%d skipped, %d failed)\n", result.Sent, result.Skipped, result.Failed)
	if result.CapReached {
		fmt.Println("Daily cap reached; remaining applications stay pending until tomorrow.")
	}
	return nil
}

func applyToCompany(ctx context.Context, st *store.Store, app *applicator.Applicator, company string) error {
	apps, err := st.ListApplications(ctx, store.ListOptions{Status: types.StatusPending, Company: company})
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	if len(apps) == 0 {
		return fmt.Errorf("no pending application for %q", company)
	}

	// The list is newest first; the oldest pending record is the last one.
	target := apps[len(apps)-1]
	if err := app.Apply(ctx, target.ID); err != nil {
		if errors.Is(err, applicator.ErrDailyCapReached) {
			return fmt.Errorf("daily cap reached, try again tomorrow: %w", err)
		}
		return err
	}

	fmt.Printf("Applied to %s at %s\n", target.JobTitle, target.CompanyName)
	return nil
}
