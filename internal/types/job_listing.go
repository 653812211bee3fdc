// Package types provides type definitions for the application records shared across the job-hunter pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Board constants for supported job boards
const (
	BoardIndeed    = "indeed"
	BoardLinkedIn  = "linkedin"
	BoardGlassdoor = "glassdoor"
)

// JobListing represents one scraped job card from a board search page
type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Salary      string `json:"salary,omitempty"`
	Board       string `json:"board"`
	PostedDate  string `json:"posted_date,omitempty"` // board-relative text, e.g. "il y a 3 jours"
}

// Complete reports whether the listing carries the fields a record needs.
// Cards missing any of them are skipped by the scrapers.
func (l JobListing) Complete() bool {
	return strings.TrimSpace(l.Title) != "" &&
		strings.TrimSpace(l.Company) != "" &&
		strings.TrimSpace(l.URL) != ""
}
