package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var contactCommand = &cobra.Command{
	Use:   "contact <id>",
	Short: "Find contact information for one application",
	Long: `Re-runs contact enrichment for a single application record and saves
whatever it finds. Use --website to point the lookup at a known company
site instead of searching for one.`,
	Args: cobra.ExactArgs(1),
	RunE: runContact,
}

var contactWebsite string

func init() {
	contactCommand.Flags().StringVar(&contactWebsite, "website", "", "Company website to scrape")
	rootCmd.AddCommand(contactCommand)
}

func runContact(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid application id %q", args[0])
	}

	ctx := context.Background()

	cfg, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	app, err := st.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("application not found: %d", id)
	}

	website := app.CompanyWebsite
	if contactWebsite != "" {
		website = contactWebsite
	}

	finder := newFinder(ctx, cfg, newFetchClient(cfg, log), log)
	info := finder.Enrich(ctx, app.CompanyName, app.JobDescription, website)

	if !info.Empty() {
		if err := st.SetContactInfo(ctx, id, info); err != nil {
			return err
		}
	}

	line := strings.Repeat("=", 60)
	fmt.Printf("\nCONTACT INFORMATION: %s\n", app.CompanyName)
	fmt.Println(line)
	fmt.Printf("Email: %s\n", orNotFound(info.BestEmail()))
	phone := ""
	if len(info.Phones) > 0 {
		phone = info.Phones[0]
	}
	fmt.Printf("Phone: %s\n", orNotFound(phone))
	fmt.Printf("Website: %s\n", orNotFound(info.Website))
	fmt.Printf("Contact Person: %s\n", orNotFound(info.Person))
	fmt.Println(line)
	return nil
}

func orNotFound(s string) string {
	if s == "" {
		return "Not found"
	}
	return s
}
