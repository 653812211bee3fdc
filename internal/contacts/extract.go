// Package contacts - extract.go pulls email addresses and French phone
// numbers out of free text.
package contacts

import (
	"regexp"
	"strings"
)

const (
	// MaxEmails caps how many addresses are kept per record.
	MaxEmails = 5
	// MaxPhones caps how many phone numbers are kept per record.
	MaxPhones = 3
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// French numbers: +33 followed by nine digits, or a ten digit 0-prefixed
	// national form.
	phonePattern = regexp.MustCompile(`\+?33\s?[0-9]{9}|0[0-9]{9}`)
)

// blockedEmailWords mark automated mailboxes that never reach a human.
var blockedEmailWords = []string{"noreply", "no-reply", "notification", "bot", "donotreply"}

// assetSuffixes are file extensions the email pattern picks up from HTML
// image references like logo@2x.png.
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}

// ExtractEmails returns up to MaxEmails unique contact addresses found in
// text, in order of first appearance. Automated mailboxes are dropped.
func ExtractEmails(text string) []string {
	var emails []string
	seen := make(map[string]bool)

	for _, match := range emailPattern.FindAllString(text, -1) {
		lower := strings.ToLower(match)
		if seen[lower] || !usableEmail(lower) {
			continue
		}
		seen[lower] = true
		emails = append(emails, match)
		if len(emails) == MaxEmails {
			break
		}
	}
	return emails
}

func usableEmail(lower string) bool {
	for _, word := range blockedEmailWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	return true
}

// ExtractPhones returns up to MaxPhones unique French phone numbers found
// in text, in order of first appearance.
func ExtractPhones(text string) []string {
	var phones []string
	seen := make(map[string]bool)

	for _, match := range phonePattern.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		phones = append(phones, match)
		if len(phones) == MaxPhones {
			break
		}
	}
	return phones
}
