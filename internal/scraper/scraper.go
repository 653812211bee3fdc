// Package scraper extracts job listings from the supported boards and merges
// them into one deduplicated batch per run.
package scraper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/types"
)

const (
	// DefaultPages is the number of result pages fetched per query.
	DefaultPages = 5
	// DefaultPageDelay is the pause between result page fetches.
	DefaultPageDelay = 2 * time.Second
)

// Scraper searches one job board for listings matching a query.
type Scraper interface {
	// Board names the job board this scraper covers.
	Board() string
	// Search returns the listings found for a query in a location. A board
	// that cannot be scraped automatically returns an empty slice.
	Search(ctx context.Context, query, location string) ([]types.JobListing, error)
}

// Aggregator runs a set of board scrapers sequentially and merges their
// results. Listings with a URL already seen in the same run are dropped.
type Aggregator struct {
	scrapers []Scraper
	logger   *zap.Logger
}

// NewAggregator builds an Aggregator over the given scrapers.
func NewAggregator(logger *zap.Logger, scrapers ...Scraper) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{scrapers: scrapers, logger: logger}
}

// SearchAll runs every query against every board, one board at a time. A
// board failure is logged and skipped; the remaining boards still run.
func (a *Aggregator) SearchAll(ctx context.Context, queries []string, location string) ([]types.JobListing, error) {
	var merged []types.JobListing
	seen := make(map[string]bool)

	for _, s := range a.scrapers {
		for _, query := range queries {
			if err := ctx.Err(); err != nil {
				return merged, err
			}

			listings, err := s.Search(ctx, query, location)
			if err != nil {
				a.logger.Warn("board search failed",
					zap.String("board", s.Board()),
					zap.String("query", query),
					zap.Error(err))
				continue
			}
			for _, listing := range listings {
				if seen[listing.URL] {
					continue
				}
				seen[listing.URL] = true
				merged = append(merged, listing)
			}
			a.logger.Info("board search finished",
				zap.String("board", s.Board()),
				zap.String("query", query),
				zap.Int("listings", len(listings)))
		}
	}
	return merged, nil
}
