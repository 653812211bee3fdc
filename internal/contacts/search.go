// Package contacts - search.go discovers company websites through the
// Programmable Search API.
package contacts

import (
	"context"
	"fmt"
	"net/url"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/mathieu/job-hunter/internal/fetch"
)

// WebsiteSearcher finds a company's own website from its name.
type WebsiteSearcher interface {
	CompanyWebsite(ctx context.Context, company string) (string, error)
}

// GoogleSearcher implements WebsiteSearcher over the Custom Search API.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a GoogleSearcher with an API key and search
// engine ID.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// CompanyWebsite returns the first search result that is not itself a job
// board, so listings pages never masquerade as company sites.
func (g *GoogleSearcher) CompanyWebsite(ctx context.Context, company string) (string, error) {
	query := fmt.Sprintf("%s site officiel", company)
	resp, err := g.svc.Cse.List().Context(ctx).Cx(g.cx).Q(query).Num(5).Do()
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	for _, item := range resp.Items {
		parsed, err := url.Parse(item.Link)
		if err != nil || parsed.Host == "" {
			continue
		}
		if fetch.IsBoardHost(parsed.Host) {
			continue
		}
		return item.Link, nil
	}
	return "", fmt.Errorf("no usable search results for %s", company)
}
