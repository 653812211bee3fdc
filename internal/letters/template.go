package letters

import (
	"fmt"
	"strings"

	"github.com/mathieu/job-hunter/internal/types"
)

const subjectTemplate = "Application for {{.Title}} Position"

const bodyTemplate = `Dear Hiring Manager,

I am writing to express my strong interest in the {{.Title}} position at {{.Company}}.

With my relevant experience and skills, I am confident I can make a significant contribution to your team.

Job Details:
- Position: {{.Title}}
- Company: {{.Company}}
- Location: {{.Location}}

I believe this role aligns perfectly with my career goals and expertise.

Thank you for considering my application. I look forward to the opportunity to discuss how I can contribute to your organization.

Best regards,
{{.Candidate}}`

// TemplateLetter fills the stock letter for a listing.
func TemplateLetter(listing types.JobListing, candidate string) Letter {
	if candidate == "" {
		candidate = "[Your Name]"
	}
	data := map[string]string{
		"Title":     listing.Title,
		"Company":   listing.Company,
		"Location":  listing.Location,
		"Candidate": candidate,
	}
	return Letter{
		Subject: format(subjectTemplate, data),
		Body:    format(bodyTemplate, data),
	}
}

// format replaces {{.Key}} placeholders with values from data.
func format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
