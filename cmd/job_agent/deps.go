package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/applicator"
	"github.com/mathieu/job-hunter/internal/config"
	"github.com/mathieu/job-hunter/internal/contacts"
	"github.com/mathieu/job-hunter/internal/fetch"
	"github.com/mathieu/job-hunter/internal/letters"
	"github.com/mathieu/job-hunter/internal/logger"
	"github.com/mathieu/job-hunter/internal/mailer"
	"github.com/mathieu/job-hunter/internal/scraper"
	"github.com/mathieu/job-hunter/internal/store"
)

// defaultReportsDir is where report subcommands write workbooks.
const defaultReportsDir = "reports"

// openEnv loads the environment configuration, builds the logger, and opens
// the store with the schema applied. Every subcommand starts here.
func openEnv(ctx context.Context) (*config.Config, *zap.Logger, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := newLogger(cfg)

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	return cfg, log, st, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return logger.New(level, cfg.LogFormat)
}

func newFetchClient(cfg *config.Config, log *zap.Logger) *fetch.Client {
	return fetch.NewClient(fetch.Options{
		Headless: cfg.HeadlessBrowser,
		Logger:   log,
	})
}

// newAggregator wires every supported board. pages <= 0 keeps the scraper
// default.
func newAggregator(client *fetch.Client, pages int, log *zap.Logger) (*scraper.Aggregator, error) {
	indeed, err := scraper.NewIndeed(client, scraper.IndeedOptions{Pages: pages}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build indeed scraper: %w", err)
	}
	return scraper.NewAggregator(log,
		indeed,
		scraper.NewLinkedIn(log),
		scraper.NewGlassdoor(log),
	), nil
}

// newFinder builds the contact finder; website discovery is enabled only
// when the Google Search keys are configured.
func newFinder(ctx context.Context, cfg *config.Config, client *fetch.Client, log *zap.Logger) *contacts.Finder {
	var searcher contacts.WebsiteSearcher
	if cfg.GoogleSearchAPIKey != "" && cfg.GoogleSearchCX != "" {
		gs, err := contacts.NewGoogleSearcher(ctx, cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX)
		if err != nil {
			log.Warn("website discovery disabled", zap.Error(err))
		} else {
			searcher = gs
		}
	}
	return contacts.NewFinder(client, searcher, log)
}

// newGenerator builds the letter generator; tailoring is enabled only when
// a Gemini key is configured. The returned func releases the LLM client.
func newGenerator(ctx context.Context, cfg *config.Config, log *zap.Logger) (*letters.Generator, func(), error) {
	if cfg.GeminiAPIKey == "" {
		return letters.NewGenerator(cfg.CandidateName, nil, log), func() {}, nil
	}
	tailor, err := letters.NewGeminiTailor(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build letter tailor: %w", err)
	}
	return letters.NewGenerator(cfg.CandidateName, tailor, log), func() { tailor.Close() }, nil
}

// newTransport selects the configured email provider. Credentials are
// validated first so a misconfigured run aborts before any stage works.
func newTransport(ctx context.Context, cfg *config.Config, log *zap.Logger) (mailer.Transport, error) {
	if err := cfg.ValidateEmail(); err != nil {
		return nil, err
	}
	if cfg.EmailProvider == "ses" {
		return mailer.NewSES(ctx, cfg.AWSRegion, log)
	}
	return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailAddress, cfg.EmailPassword, log), nil
}

func newApplicator(ctx context.Context, cfg *config.Config, st *store.Store, log *zap.Logger) (*applicator.Applicator, func(), error) {
	transport, err := newTransport(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	gen, closeGen, err := newGenerator(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	app := applicator.New(st, transport, gen, applicator.Options{
		From:      cfg.EmailAddress,
		MaxPerDay: cfg.MaxPerDay,
		Delay:     cfg.Delay(),
	}, log)
	return app, closeGen, nil
}
