// Package types provides type definitions for the application records shared across the job-hunter pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContactInfo holds best-effort contact details discovered for a company
type ContactInfo struct {
	Emails  []string `json:"emails,omitempty"`
	Phones  []string `json:"phones,omitempty"`
	Website string   `json:"website,omitempty"`
	Person  string   `json:"person,omitempty"`
}

// BestEmail returns the address an application should be sent to, or ""
// when enrichment found nothing.
func (c ContactInfo) BestEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// Empty reports whether enrichment produced no usable data at all.
func (c ContactInfo) Empty() bool {
	return len(c.Emails) == 0 && len(c.Phones) == 0 && c.Website == "" && c.Person == ""
}

// Merge folds other into c, keeping existing values and deduplicating
// emails and phones. The receiver's fields win on conflict.
func (c ContactInfo) Merge(other ContactInfo) ContactInfo {
	merged := ContactInfo{
		Emails:  appendUnique(c.Emails, other.Emails),
		Phones:  appendUnique(c.Phones, other.Phones),
		Website: c.Website,
		Person:  c.Person,
	}
	if merged.Website == "" {
		merged.Website = other.Website
	}
	if merged.Person == "" {
		merged.Person = other.Person
	}
	return merged
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, v := range base {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range extra {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
