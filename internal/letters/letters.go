// Package letters builds the application email for a listing. The default
// is a plain template; when a Gemini key is configured the letter is
// tailored per listing, falling back to the template on any error.
package letters

import (
	"context"

	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/types"
)

// Letter is a ready-to-send subject and plain-text body.
type Letter struct {
	Subject string
	Body    string
}

// Tailor produces a letter tuned to one listing.
type Tailor interface {
	TailorLetter(ctx context.Context, listing types.JobListing, candidate string) (Letter, error)
}

// Generator turns listings into letters.
type Generator struct {
	candidate string
	tailor    Tailor
	logger    *zap.Logger
}

// NewGenerator builds a Generator. tailor may be nil, which keeps every
// letter on the template.
func NewGenerator(candidate string, tailor Tailor, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{candidate: candidate, tailor: tailor, logger: logger}
}

// Generate returns the letter for a listing. Tailoring failures are logged
// and the template letter is used instead, so Generate never fails.
func (g *Generator) Generate(ctx context.Context, listing types.JobListing) Letter {
	if g.tailor == nil {
		return TemplateLetter(listing, g.candidate)
	}
	letter, err := g.tailor.TailorLetter(ctx, listing, g.candidate)
	if err != nil {
		g.logger.Warn("letter tailoring failed, using template",
			zap.String("company", listing.Company),
			zap.String("title", listing.Title),
			zap.Error(err))
		return TemplateLetter(listing, g.candidate)
	}
	return letter
}
