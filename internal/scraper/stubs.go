// Package scraper - stubs.go covers the boards that block automated search.
package scraper

import (
	"context"

	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/types"
)

// LinkedIn cannot be scraped without violating its terms of service. The
// scraper exists so the board shows up in logs and can be tracked manually
// with the track command.
type LinkedIn struct {
	logger *zap.Logger
}

// NewLinkedIn builds the LinkedIn placeholder scraper.
func NewLinkedIn(logger *zap.Logger) *LinkedIn {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkedIn{logger: logger}
}

// Board implements Scraper.
func (s *LinkedIn) Board() string { return types.BoardLinkedIn }

// Search implements Scraper. It returns no listings.
func (s *LinkedIn) Search(_ context.Context, query, _ string) ([]types.JobListing, error) {
	s.logger.Info("linkedin runs in manual mode, use the official API or track listings by hand",
		zap.String("query", query))
	return nil, nil
}

// Glassdoor sits behind aggressive anti-bot protection; automated search is
// not attempted.
type Glassdoor struct {
	logger *zap.Logger
}

// NewGlassdoor builds the Glassdoor placeholder scraper.
func NewGlassdoor(logger *zap.Logger) *Glassdoor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Glassdoor{logger: logger}
}

// Board implements Scraper.
func (s *Glassdoor) Board() string { return types.BoardGlassdoor }

// Search implements Scraper. It returns no listings.
func (s *Glassdoor) Search(_ context.Context, query, _ string) ([]types.JobListing, error) {
	s.logger.Info("glassdoor runs in manual mode, track listings by hand",
		zap.String("query", query))
	return nil, nil
}
