// Package pipeline provides the high-level orchestration for one full
// job-hunting run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/applicator"
	"github.com/mathieu/job-hunter/internal/contacts"
	"github.com/mathieu/job-hunter/internal/reporter"
	"github.com/mathieu/job-hunter/internal/scraper"
	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

// DefaultEnrichLimit bounds how many records are enriched per run.
const DefaultEnrichLimit = 5

// DefaultEnrichPause spaces contact lookups so company sites are not
// hammered.
const DefaultEnrichPause = time.Second

// Deps carries every component a run needs. Nothing is global; the caller
// builds the components and hands them over.
type Deps struct {
	Store      *store.Store
	Scrapers   *scraper.Aggregator
	Contacts   *contacts.Finder
	Applicator *applicator.Applicator
	Reporter   *reporter.Reporter
	Logger     *zap.Logger
	Out        io.Writer
}

// Options holds per-run parameters.
type Options struct {
	Queries  []string
	Location string
	// EnrichLimit caps contact lookups per run; zero means DefaultEnrichLimit.
	EnrichLimit int
	// EnrichPause overrides the spacing between contact lookups.
	EnrichPause time.Duration
}

// Stats summarizes what the run did.
type Stats struct {
	Found    int
	Created  int
	Enriched int
	Applied  applicator.Result
	Reports  []string
	Summary  reporter.Summary
}

// Run executes the six stages in order: init store, scrape, persist new
// records, enrich contacts, apply, report. Per-item failures are logged and
// skipped; configuration and database errors abort.
func Run(ctx context.Context, deps Deps, opts Options) (*Stats, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if opts.EnrichLimit <= 0 {
		opts.EnrichLimit = DefaultEnrichLimit
	}
	if opts.EnrichPause <= 0 {
		opts.EnrichPause = DefaultEnrichPause
	}
	out := deps.Out
	stats := &Stats{}

	fmt.Fprintf(out, "Step 1/6: Initializing database...\n")
	if err := deps.Store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}

	fmt.Fprintf(out, "Step 2/6: Searching job boards...\n")
	listings, err := deps.Scrapers.SearchAll(ctx, opts.Queries, opts.Location)
	if err != nil {
		return nil, fmt.Errorf("job search failed: %w", err)
	}
	stats.Found = len(listings)
	fmt.Fprintf(out, "Found %d job postings\n", stats.Found)

	fmt.Fprintf(out, "Step 3/6: Recording new postings...\n")
	created, err := PersistListings(ctx, deps.Store, deps.Logger, listings)
	if err != nil {
		return nil, err
	}
	stats.Created = created
	fmt.Fprintf(out, "Recorded %d new applications\n", stats.Created)

	fmt.Fprintf(out, "Step 4/6: Finding company contact information...\n")
	enriched, err := enrichPending(ctx, deps, opts.EnrichLimit, opts.EnrichPause)
	if err != nil {
		return nil, err
	}
	stats.Enriched = enriched
	fmt.Fprintf(out, "Enriched %d applications\n", stats.Enriched)

	fmt.Fprintf(out, "Step 5/6: Applying to jobs...\n")
	applied, err := deps.Applicator.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("application dispatch failed: %w", err)
	}
	stats.Applied = applied
	fmt.Fprintf(out, "Applied to %d jobs\n", applied.Sent)

	fmt.Fprintf(out, "Step 6/6: Generating reports...\n")
	paths, err := deps.Reporter.WriteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}
	stats.Reports = paths

	summary, err := deps.Reporter.StatusSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("status summary failed: %w", err)
	}
	stats.Summary = summary
	fmt.Fprintf(out, "\n%s\n", summary)

	return stats, nil
}

// PersistListings records each scraped listing as a pending application.
// Listings already tracked are skipped quietly; other failures are logged
// and skipped. Returns how many records were created.
func PersistListings(ctx context.Context, st *store.Store, log *zap.Logger, listings []types.JobListing) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	created := 0
	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		_, err := st.CreateApplication(ctx, store.NewApplication(listing))
		if err != nil {
			if errors.Is(err, store.ErrDuplicateURL) {
				log.Debug("posting already tracked", zap.String("url", listing.URL))
				continue
			}
			log.Warn("posting not recorded",
				zap.String("url", listing.URL),
				zap.String("company", listing.Company),
				zap.Error(err))
			continue
		}
		created++
	}
	return created, nil
}

// enrichPending looks up contact details for pending records that have no
// contact email yet, oldest first, up to limit.
func enrichPending(ctx context.Context, deps Deps, limit int, pause time.Duration) (int, error) {
	pending, err := deps.Store.ListApplications(ctx, store.ListOptions{Status: types.StatusPending})
	if err != nil {
		return 0, err
	}

	enriched := 0
	for i := len(pending) - 1; i >= 0 && enriched < limit; i-- {
		app := pending[i]
		if app.ContactEmail != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return enriched, err
		}

		info := deps.Contacts.Enrich(ctx, app.CompanyName, app.JobDescription, app.CompanyWebsite)
		if info.Empty() {
			deps.Logger.Info("no contact information found",
				zap.Int64("id", app.ID),
				zap.String("company", app.CompanyName))
			continue
		}
		if err := deps.Store.SetContactInfo(ctx, app.ID, info); err != nil {
			deps.Logger.Warn("contact info not saved",
				zap.Int64("id", app.ID),
				zap.Error(err))
			continue
		}
		enriched++
		deps.Logger.Info("application enriched",
			zap.Int64("id", app.ID),
			zap.String("company", app.CompanyName),
			zap.String("email", info.BestEmail()))

		if enriched < limit {
			select {
			case <-ctx.Done():
				return enriched, ctx.Err()
			case <-time.After(pause):
			}
		}
	}
	return enriched, nil
}
