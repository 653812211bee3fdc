// Package fetch provides the HTTP layer shared by the job board scraper and
// the contact finder: a configured client, goquery parsing, and an optional
// headless-browser fallback for JavaScript-rendered pages.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultTimeout is the HTTP request timeout applied when none is configured.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent mimics a desktop browser. Job boards serve a degraded or
// blocked page to clients that identify as bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Error represents a failure while retrieving a page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result holds the response from a page fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Document parses the fetched HTML into a goquery document.
func (r *Result) Document() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", r.URL, err)
	}
	return doc, nil
}

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Headless enables the browser fallback in Document when a plain GET
	// returns a page with too little rendered content.
	Headless bool
	Logger   *zap.Logger
}

// Client fetches pages with a shared configuration. The job board scraper
// and the contact finder both run their requests through one Client.
type Client struct {
	http      *http.Client
	userAgent string
	headless  bool
	logger    *zap.Logger
}

// NewClient builds a Client, filling unset options with defaults.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		headless:  opts.Headless,
		logger:    opts.Logger,
	}
}

// Get retrieves a URL. On a non-200 status the partial Result is returned
// alongside the error so callers can inspect the status code.
func (c *Client) Get(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	c.logger.Debug("fetching page", zap.String("url", urlStr))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// Document fetches a URL and parses it. When the client was built with
// Headless enabled and the plain response carries too little rendered text,
// the page is re-fetched through the headless browser before parsing.
func (c *Client) Document(ctx context.Context, urlStr string) (*goquery.Document, error) {
	result, err := c.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	doc, err := result.Document()
	if err != nil {
		return nil, err
	}

	if c.headless && ShouldUseBrowser(doc.Text()) {
		c.logger.Debug("thin page, rendering in browser", zap.String("url", urlStr))
		html, renderErr := c.Render(ctx, urlStr)
		if renderErr != nil {
			// The plain document is still usable; keep it.
			c.logger.Warn("browser rendering failed, using plain fetch",
				zap.String("url", urlStr), zap.Error(renderErr))
			return doc, nil
		}
		rendered := &Result{URL: urlStr, HTML: html, StatusCode: http.StatusOK}
		return rendered.Document()
	}
	return doc, nil
}

// PageText fetches a URL and returns its visible text with scripts, styles
// and navigation removed. The contact finder scans this text for emails and
// phone numbers.
func (c *Client) PageText(ctx context.Context, urlStr string) (string, error) {
	doc, err := c.Document(ctx, urlStr)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	return cleanWhitespace(doc.Text()), nil
}

// cleanWhitespace trims each line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
