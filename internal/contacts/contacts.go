// Package contacts enriches application records with company contact
// information: addresses scraped from the job description, the company
// website, and its contact pages. Everything here is best effort; a record
// that yields nothing is left as it was.
package contacts

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/fetch"
	"github.com/mathieu/job-hunter/internal/types"
)

// Finder assembles contact information for one company at a time.
type Finder struct {
	client   *fetch.Client
	searcher WebsiteSearcher
	logger   *zap.Logger
}

// NewFinder builds a Finder. searcher may be nil, which disables website
// discovery; a website passed explicitly to Enrich is still scraped.
func NewFinder(client *fetch.Client, searcher WebsiteSearcher, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{client: client, searcher: searcher, logger: logger}
}

// Enrich gathers contact information for a company. The job description is
// scanned first, then the company website and its contact page when one can
// be found. Failures along the way are logged and skipped.
func (f *Finder) Enrich(ctx context.Context, company, description, website string) types.ContactInfo {
	info := types.ContactInfo{
		Emails: ExtractEmails(description),
		Phones: ExtractPhones(description),
	}

	if website == "" && f.searcher != nil && company != "" {
		found, err := f.searcher.CompanyWebsite(ctx, company)
		if err != nil {
			f.logger.Debug("website discovery failed",
				zap.String("company", company), zap.Error(err))
		} else {
			website = found
		}
	}
	if website == "" {
		return capInfo(info)
	}
	info.Website = website

	siteInfo, err := f.scrapeWebsite(ctx, website)
	if err != nil {
		f.logger.Debug("website scrape failed",
			zap.String("company", company), zap.String("website", website), zap.Error(err))
		return capInfo(info)
	}
	return capInfo(info.Merge(siteInfo))
}

// capInfo re-applies the extraction caps after merging sources.
func capInfo(info types.ContactInfo) types.ContactInfo {
	if len(info.Emails) > MaxEmails {
		info.Emails = info.Emails[:MaxEmails]
	}
	if len(info.Phones) > MaxPhones {
		info.Phones = info.Phones[:MaxPhones]
	}
	return info
}

// scrapeWebsite extracts contact details from a company site and, when one
// is linked, its contact page.
func (f *Finder) scrapeWebsite(ctx context.Context, website string) (types.ContactInfo, error) {
	doc, err := f.client.Document(ctx, website)
	if err != nil {
		return types.ContactInfo{}, err
	}

	contactURL := findContactPage(doc, website)

	doc.Find("script, style, noscript").Remove()
	text := doc.Text()
	info := types.ContactInfo{
		Emails:  ExtractEmails(text),
		Phones:  ExtractPhones(text),
		Website: website,
	}

	if contactURL == "" {
		return info, nil
	}
	contactText, err := f.client.PageText(ctx, contactURL)
	if err != nil {
		f.logger.Debug("contact page fetch failed",
			zap.String("url", contactURL), zap.Error(err))
		return info, nil
	}
	return info.Merge(types.ContactInfo{
		Emails: ExtractEmails(contactText),
		Phones: ExtractPhones(contactText),
	}), nil
}

// findContactPage returns the first link whose text or href mentions
// contact, resolved against the page URL.
func findContactPage(doc *goquery.Document, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	var found string
	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		text := strings.ToLower(strings.TrimSpace(link.Text()))
		if !strings.Contains(text, "contact") && !strings.Contains(strings.ToLower(href), "contact") {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return true
		}
		found = resolved.String()
		return false
	})
	return found
}
