// Package letters - gemini.go tailors letters with the Gemini API.
package letters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/option"

	"github.com/mathieu/job-hunter/internal/types"
)

// DefaultGeminiModel is the model used for letter tailoring.
const DefaultGeminiModel = "gemini-1.5-flash"

// letterSchema constrains the model's reply to exactly a subject and body.
const letterSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["subject", "body"],
  "properties": {
    "subject": {"type": "string", "minLength": 1},
    "body": {"type": "string", "minLength": 1}
  },
  "additionalProperties": false
}`

const tailorPrompt = `You are writing a short job application email on behalf of {{.Candidate}}.

The listing:
- Position: {{.Title}}
- Company: {{.Company}}
- Location: {{.Location}}
- Description: {{.Description}}

Write a concise, professional application email in the language of the listing.
Do not invent qualifications. Sign with the candidate's name.

Respond with a JSON object of exactly two string fields:
{"subject": "...", "body": "..."}`

// GeminiTailor implements Tailor over the Gemini API.
type GeminiTailor struct {
	client *genai.Client
	model  string
}

// NewGeminiTailor creates a GeminiTailor.
func NewGeminiTailor(ctx context.Context, apiKey string) (*GeminiTailor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiTailor{client: client, model: DefaultGeminiModel}, nil
}

// Close releases the underlying API client.
func (t *GeminiTailor) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// TailorLetter implements Tailor. The model's reply must be JSON that
// passes the letter schema; anything else is an error and the caller falls
// back to the template.
func (t *GeminiTailor) TailorLetter(ctx context.Context, listing types.JobListing, candidate string) (Letter, error) {
	if candidate == "" {
		candidate = "the candidate"
	}
	prompt := format(tailorPrompt, map[string]string{
		"Candidate":   candidate,
		"Title":       listing.Title,
		"Company":     listing.Company,
		"Location":    listing.Location,
		"Description": listing.Description,
	})

	model := t.client.GenerativeModel(t.model)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Letter{}, fmt.Errorf("failed to generate letter: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return Letter{}, err
	}
	return parseLetter(cleanJSONBlock(text))
}

// extractText collects the text parts of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code fences around JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// parseLetter validates raw JSON against the letter schema and decodes it.
func parseLetter(raw string) (Letter, error) {
	schemaLoader := gojsonschema.NewStringLoader(letterSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return Letter{}, fmt.Errorf("letter JSON could not be validated: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			issues = append(issues, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return Letter{}, fmt.Errorf("letter JSON failed validation: %s", strings.Join(issues, "; "))
	}

	var letter struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.Unmarshal([]byte(raw), &letter); err != nil {
		return Letter{}, fmt.Errorf("failed to decode letter JSON: %w", err)
	}
	return Letter{Subject: letter.Subject, Body: letter.Body}, nil
}
