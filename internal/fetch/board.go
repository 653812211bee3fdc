// Package fetch - board.go identifies which job board a URL belongs to.
package fetch

import (
	"net/url"
	"strings"

	"github.com/mathieu/job-hunter/internal/types"
)

// DetectBoard identifies the job board from a listing URL. It returns the
// empty string for URLs that belong to no known board.
func DetectBoard(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "indeed.com"):
		return types.BoardIndeed
	case strings.Contains(host, "linkedin.com"):
		return types.BoardLinkedIn
	case strings.Contains(host, "glassdoor."):
		return types.BoardGlassdoor
	default:
		return ""
	}
}

// boardHosts are domains that host listings rather than company sites.
var boardHosts = []string{
	"indeed.com",
	"linkedin.com",
	"glassdoor.com",
	"glassdoor.fr",
	"monster.fr",
	"monster.com",
	"welcometothejungle.com",
	"apec.fr",
	"pole-emploi.fr",
	"francetravail.fr",
	"hellowork.com",
}

// IsBoardHost reports whether a host belongs to a job board or aggregator.
// The contact finder uses it to reject board pages when it searches for a
// company's own website.
func IsBoardHost(host string) bool {
	host = strings.ToLower(host)
	for _, board := range boardHosts {
		if host == board || strings.HasSuffix(host, "."+board) {
			return true
		}
	}
	return false
}
