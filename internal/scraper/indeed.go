// Package scraper - indeed.go scrapes fr.indeed.com search results.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/fetch"
	"github.com/mathieu/job-hunter/internal/types"
)

// DefaultIndeedBaseURL is the French Indeed site.
const DefaultIndeedBaseURL = "https://fr.indeed.com"

// Indeed scrapes paginated Indeed search results. Cards that cannot be
// parsed are skipped; a failed page does not abort the remaining pages.
type Indeed struct {
	client  *fetch.Client
	baseURL *url.URL
	pages   int
	delay   time.Duration
	logger  *zap.Logger
}

// IndeedOptions configures an Indeed scraper.
type IndeedOptions struct {
	// BaseURL overrides the board origin, mainly for tests.
	BaseURL string
	// Pages is the number of result pages per query.
	Pages int
	// PageDelay is the pause between result page fetches.
	PageDelay time.Duration
}

// NewIndeed builds an Indeed scraper over a fetch client.
func NewIndeed(client *fetch.Client, opts IndeedOptions, logger *zap.Logger) (*Indeed, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultIndeedBaseURL
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Indeed base URL %q: %w", opts.BaseURL, err)
	}
	if opts.Pages <= 0 {
		opts.Pages = DefaultPages
	}
	if opts.PageDelay <= 0 {
		opts.PageDelay = DefaultPageDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indeed{
		client:  client,
		baseURL: base,
		pages:   opts.Pages,
		delay:   opts.PageDelay,
		logger:  logger,
	}, nil
}

// Board implements Scraper.
func (s *Indeed) Board() string { return types.BoardIndeed }

// Search fetches up to s.pages result pages for a query and extracts the job
// cards on each. Results within the query are deduplicated by URL.
func (s *Indeed) Search(ctx context.Context, query, location string) ([]types.JobListing, error) {
	var listings []types.JobListing
	seen := make(map[string]bool)

	for page := 0; page < s.pages; page++ {
		if page > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return listings, ctx.Err()
			case <-time.After(s.delay):
			}
		}

		pageURL := s.searchURL(query, location, page)
		doc, err := s.client.Document(ctx, pageURL)
		if err != nil {
			s.logger.Warn("indeed page fetch failed",
				zap.Int("page", page), zap.String("url", pageURL), zap.Error(err))
			continue
		}

		cards := doc.Find("div.job_seen_beacon")
		if cards.Length() == 0 {
			// Past the last page of results, or a block page.
			s.logger.Debug("no job cards on page", zap.Int("page", page))
			break
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			listing, err := s.extractCard(card)
			if err != nil {
				s.logger.Debug("skipping unparseable card", zap.Error(err))
				return
			}
			if seen[listing.URL] {
				return
			}
			seen[listing.URL] = true
			listings = append(listings, listing)
		})
	}
	return listings, nil
}

// searchURL builds the paginated search URL. Indeed pages by result offset
// in steps of ten.
func (s *Indeed) searchURL(query, location string, page int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("l", location)
	if page > 0 {
		params.Set("start", fmt.Sprintf("%d", page*10))
	}
	u := *s.baseURL
	u.Path = "/jobs"
	u.RawQuery = params.Encode()
	return u.String()
}

// extractCard pulls one listing out of a job_seen_beacon card.
func (s *Indeed) extractCard(card *goquery.Selection) (types.JobListing, error) {
	title := cardText(card, "h2.jobTitle")
	company := cardText(card, "span.companyName", `[data-testid="company-name"]`)
	location := cardText(card, "div.companyLocation", `[data-testid="text-location"]`)
	snippet := cardText(card, "div.job-snippet", `[data-testid="belowJobSnippet"]`)
	salary := cardText(card, "span.salary-snippet", ".salary-snippet-container", `[data-testid="attribute_snippet_testid"]`)
	posted := cardText(card, "span.date", `[data-testid="myJobsStateDate"]`)

	href, ok := card.Find("a.jcs-JobTitle").First().Attr("href")
	if !ok {
		href, ok = card.Find("h2.jobTitle a").First().Attr("href")
	}
	if !ok {
		return types.JobListing{}, fmt.Errorf("job card has no link")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return types.JobListing{}, fmt.Errorf("job card link %q: %w", href, err)
	}

	listing := types.JobListing{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: snippet,
		Salary:      salary,
		URL:         s.baseURL.ResolveReference(ref).String(),
		Board:       types.BoardIndeed,
		PostedDate:  posted,
	}
	if !listing.Complete() {
		return types.JobListing{}, fmt.Errorf("job card missing title or company")
	}
	return listing, nil
}

// Details fetches a listing page and returns the full job description text.
func (s *Indeed) Details(ctx context.Context, jobURL string) (string, error) {
	doc, err := s.client.Document(ctx, jobURL)
	if err != nil {
		return "", err
	}
	desc := doc.Find("#jobDescriptionText")
	if desc.Length() == 0 {
		desc = doc.Find("#jobDescription")
	}
	return strings.TrimSpace(desc.Text()), nil
}

// cardText returns the trimmed text of the first selector that matches.
func cardText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if node := card.Find(sel).First(); node.Length() > 0 {
			return strings.TrimSpace(node.Text())
		}
	}
	return ""
}
