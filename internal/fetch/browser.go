// Package fetch - browser.go provides headless browser rendering for job
// boards that only populate their listings through JavaScript.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the minimum visible text length for a plain GET to be
// considered fully rendered. Shorter pages are treated as JavaScript shells.
const MinContentLength = 500

// renderTimeout bounds a single browser rendering pass.
const renderTimeout = 45 * time.Second

// ShouldUseBrowser reports whether the extracted text is too short to be a
// rendered page.
func ShouldUseBrowser(extractedText string) bool {
	trimmed := 0
	for _, r := range extractedText {
		if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
			trimmed++
		}
	}
	return trimmed < MinContentLength
}

// Render loads a URL in a headless browser and returns the rendered HTML.
// Requires Chrome or Chromium on the system.
func (c *Client) Render(ctx context.Context, url string) (string, error) {
	c.logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(c.userAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, renderTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Job boards render listings after load; give scripts time to run.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss cookie banners when present; ignore failures.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"], #onetrust-accept-btn-handler`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	c.logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}
