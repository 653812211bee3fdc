package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initCommand = &cobra.Command{
	Use:   "init",
	Short: "Initialize the applications database",
	Long: `Creates the applications table and its indexes if they do not exist.
With --reset the table is dropped and recreated, deleting every record.`,
	RunE: runInit,
}

var initReset bool

func init() {
	initCommand.Flags().BoolVar(&initReset, "reset", false, "Drop and recreate the applications table")
	rootCmd.AddCommand(initCommand)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	if initReset {
		if err := st.Reset(ctx); err != nil {
			return err
		}
		fmt.Println("Database reset")
		return nil
	}

	fmt.Println("Database initialized")
	return nil
}
