// Package applicator dispatches pending applications by email, holding the
// daily cap and the delay between consecutive sends. All throttle state
// lives on the Applicator value: the cap is re-derived from the database on
// every run, so restarts and concurrent bookkeeping cannot widen it.
package applicator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mathieu/job-hunter/internal/letters"
	"github.com/mathieu/job-hunter/internal/mailer"
	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

const defaultMaxPerDay = 5

// Sentinel errors for single-record dispatch.
var (
	// ErrDailyCapReached is returned when today's quota is already used up.
	ErrDailyCapReached = errors.New("daily application cap reached")
	// ErrNoContactEmail is returned when a record has no address to send to.
	ErrNoContactEmail = errors.New("application has no contact email")
)

// Options configures an Applicator.
type Options struct {
	// From is the sender address on outgoing mail.
	From string
	// MaxPerDay caps how many records may move to sent per calendar day.
	MaxPerDay int
	// Delay is the minimum spacing between consecutive dispatches.
	Delay time.Duration
}

// Result summarizes one dispatch run.
type Result struct {
	// Sent counts records that moved to sent.
	Sent int
	// Skipped counts pending records with no contact email.
	Skipped int
	// Failed counts transport failures; those records stay pending.
	Failed int
	// CapReached is true when the run stopped on the daily cap with
	// pending records left over.
	CapReached bool
}

// Applicator owns the send loop.
type Applicator struct {
	store     *store.Store
	transport mailer.Transport
	letters   *letters.Generator
	limiter   *rate.Limiter
	from      string
	maxPerDay int
	logger    *zap.Logger
	now       func() time.Time
}

// New builds an Applicator.
func New(st *store.Store, transport mailer.Transport, gen *letters.Generator, opts Options, logger *zap.Logger) *Applicator {
	if opts.MaxPerDay <= 0 {
		opts.MaxPerDay = defaultMaxPerDay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	return &Applicator{
		store:     st,
		transport: transport,
		letters:   gen,
		limiter:   rate.NewLimiter(limit, 1),
		from:      opts.From,
		maxPerDay: opts.MaxPerDay,
		logger:    logger,
		now:       time.Now,
	}
}

// Run sends as many pending applications as today's quota allows, oldest
// first. Per-record failures are logged and leave the record pending; only
// database errors abort the run.
func (a *Applicator) Run(ctx context.Context) (Result, error) {
	var result Result

	pending, err := a.store.ListApplications(ctx, store.ListOptions{Status: types.StatusPending})
	if err != nil {
		return result, err
	}
	if len(pending) == 0 {
		a.logger.Info("no pending applications")
		return result, nil
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })

	sentToday, err := a.store.CountSentOn(ctx, a.now())
	if err != nil {
		return result, err
	}

	for i := range pending {
		app := &pending[i]

		if sentToday >= a.maxPerDay {
			result.CapReached = true
			a.logger.Info("daily application cap reached",
				zap.Int("cap", a.maxPerDay),
				zap.Int("still_pending", len(pending)-i))
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if app.ContactEmail == "" {
			result.Skipped++
			a.logger.Info("no contact email, skipping",
				zap.Int64("id", app.ID),
				zap.String("company", app.CompanyName))
			continue
		}

		letter := a.letters.Generate(ctx, listingOf(app))
		if err := a.limiter.Wait(ctx); err != nil {
			return result, err
		}

		msg := mailer.Message{
			From:    a.from,
			To:      app.ContactEmail,
			Subject: letter.Subject,
			Body:    letter.Body,
		}
		if err := a.transport.Send(ctx, msg); err != nil {
			result.Failed++
			a.logger.Warn("send failed, record stays pending",
				zap.Int64("id", app.ID),
				zap.String("company", app.CompanyName),
				zap.Error(err))
			continue
		}

		if err := a.store.MarkSent(ctx, app.ID, a.now()); err != nil {
			// The email went out but the record could not be updated; abort
			// so the mismatch is dealt with before anything else is sent.
			return result, fmt.Errorf("email sent but record %d not updated: %w", app.ID, err)
		}
		sentToday++
		result.Sent++
		a.logger.Info("application sent",
			zap.Int64("id", app.ID),
			zap.String("company", app.CompanyName),
			zap.String("title", app.JobTitle),
			zap.Int("sent_today", sentToday))
	}

	return result, nil
}

// Apply dispatches a single record under the same cap and one-shot guards
// as Run.
func (a *Applicator) Apply(ctx context.Context, id int64) error {
	sentToday, err := a.store.CountSentOn(ctx, a.now())
	if err != nil {
		return err
	}
	if sentToday >= a.maxPerDay {
		return fmt.Errorf("%w: %d sent today", ErrDailyCapReached, sentToday)
	}

	app, err := a.store.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("application not found: %d", id)
	}
	if !app.Sendable() {
		return fmt.Errorf("%w: id %d is %s", store.ErrNotPending, id, app.Status)
	}
	if app.ContactEmail == "" {
		return fmt.Errorf("%w: id %d", ErrNoContactEmail, id)
	}

	letter := a.letters.Generate(ctx, listingOf(app))
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := mailer.Message{
		From:    a.from,
		To:      app.ContactEmail,
		Subject: letter.Subject,
		Body:    letter.Body,
	}
	if err := a.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send application %d: %w", id, err)
	}
	if err := a.store.MarkSent(ctx, id, a.now()); err != nil {
		return fmt.Errorf("email sent but record %d not updated: %w", id, err)
	}

	a.logger.Info("application sent",
		zap.Int64("id", id),
		zap.String("company", app.CompanyName),
		zap.String("title", app.JobTitle),
		zap.Int("sent_today", sentToday+1))
	return nil
}

// Quota returns how many sends remain for the current calendar day.
func (a *Applicator) Quota(ctx context.Context) (int, error) {
	sentToday, err := a.store.CountSentOn(ctx, a.now())
	if err != nil {
		return 0, err
	}
	remaining := a.maxPerDay - sentToday
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// listingOf rebuilds the listing view of a stored application for the
// letter generator.
func listingOf(app *store.Application) types.JobListing {
	return types.JobListing{
		Title:       app.JobTitle,
		Company:     app.CompanyName,
		Location:    app.Location,
		URL:         app.JobURL,
		Description: app.JobDescription,
		Salary:      app.Salary,
		Board:       app.JobBoard,
		PostedDate:  app.PostedDate,
	}
}
