package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mathieu/job-hunter/internal/types"
)

// Sentinel errors for application mutations.
var (
	// ErrDuplicateURL is returned when a listing's URL is already recorded.
	ErrDuplicateURL = errors.New("job URL already recorded")
	// ErrNotPending is returned when a dispatch mutation targets a record
	// that already left the pending state.
	ErrNotPending = errors.New("application is not pending")
)

const applicationColumns = `id, company_name, job_title, job_url, job_description, salary, location,
	job_board, posted_date, contact_email, contact_phone, company_website, contact_person,
	date_applied, application_method, status, date_contacted, response_type, response_content,
	interview_scheduled, interview_date, interview_time, interview_type, interview_location,
	notes, feedback, rejection_reason, created_at, last_updated`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*Application, error) {
	var (
		app           Application
		status        string
		dateApplied   sql.NullTime
		dateContacted sql.NullTime
		interviewDate sql.NullTime
	)
	err := row.Scan(
		&app.ID, &app.CompanyName, &app.JobTitle, &app.JobURL, &app.JobDescription,
		&app.Salary, &app.Location, &app.JobBoard, &app.PostedDate,
		&app.ContactEmail, &app.ContactPhone, &app.CompanyWebsite, &app.ContactPerson,
		&dateApplied, &app.Method, &status, &dateContacted,
		&app.ResponseType, &app.ResponseContent,
		&app.InterviewScheduled, &interviewDate, &app.InterviewTime, &app.InterviewType, &app.InterviewLocation,
		&app.Notes, &app.Feedback, &app.RejectionReason,
		&app.CreatedAt, &app.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	app.Status = types.Status(status)
	if dateApplied.Valid {
		app.DateApplied = &dateApplied.Time
	}
	if dateContacted.Valid {
		app.DateContacted = &dateContacted.Time
	}
	if interviewDate.Valid {
		app.InterviewDate = &interviewDate.Time
	}
	return &app, nil
}

// CreateApplication inserts a new pending record and returns its ID.
// A listing whose URL is already recorded returns ErrDuplicateURL.
func (s *Store) CreateApplication(ctx context.Context, app Application) (int64, error) {
	now := time.Now()
	if app.Status == "" {
		app.Status = types.StatusPending
	}
	if app.Method == "" {
		app.Method = MethodEmail
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}
	app.LastUpdated = now

	query := s.rebind(`INSERT INTO applications (
		company_name, job_title, job_url, job_description, salary, location,
		job_board, posted_date, contact_email, contact_phone, company_website, contact_person,
		date_applied, application_method, status, date_contacted, response_type, response_content,
		interview_scheduled, interview_date, interview_time, interview_type, interview_location,
		notes, feedback, rejection_reason, created_at, last_updated
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (job_url) DO NOTHING`)

	args := []any{
		app.CompanyName, app.JobTitle, app.JobURL, app.JobDescription, app.Salary, app.Location,
		app.JobBoard, app.PostedDate, app.ContactEmail, app.ContactPhone, app.CompanyWebsite, app.ContactPerson,
		app.DateApplied, app.Method, string(app.Status), app.DateContacted, app.ResponseType, app.ResponseContent,
		app.InterviewScheduled, app.InterviewDate, app.InterviewTime, app.InterviewType, app.InterviewLocation,
		app.Notes, app.Feedback, app.RejectionReason, app.CreatedAt, app.LastUpdated,
	}

	if s.driver == DriverPostgres {
		var id int64
		err := s.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, fmt.Errorf("%w: %s", ErrDuplicateURL, app.JobURL)
			}
			return 0, fmt.Errorf("failed to create application: %w", err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateURL, app.JobURL)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// GetApplication retrieves a record by ID. Returns (nil, nil) when absent.
func (s *Store) GetApplication(ctx context.Context, id int64) (*Application, error) {
	query := s.rebind(`SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`)
	app, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application %d: %w", id, err)
	}
	return app, nil
}

// GetApplicationByURL retrieves a record by its job URL. Returns (nil, nil)
// when absent.
func (s *Store) GetApplicationByURL(ctx context.Context, jobURL string) (*Application, error) {
	query := s.rebind(`SELECT ` + applicationColumns + ` FROM applications WHERE job_url = ?`)
	app, err := scanApplication(s.db.QueryRowContext(ctx, query, jobURL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application by URL: %w", err)
	}
	return app, nil
}

// ListApplications retrieves records matching the given filters, newest
// first.
func (s *Store) ListApplications(ctx context.Context, opts ListOptions) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := []any{}

	if opts.Status != "" {
		query += " AND status = ?"
		args = append(args, string(opts.Status))
	}
	if opts.Board != "" {
		query += " AND job_board = ?"
		args = append(args, opts.Board)
	}
	if opts.Company != "" {
		query += " AND lower(company_name) LIKE lower(?)"
		args = append(args, "%"+opts.Company+"%")
	}

	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// CountSentOn returns how many dispatches happened on the calendar day
// containing t. Records that later moved past sent keep their date_applied,
// so they still count toward that day's quota.
func (s *Store) CountSentOn(ctx context.Context, t time.Time) (int, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)

	query := s.rebind(`SELECT COUNT(*) FROM applications WHERE date_applied >= ? AND date_applied < ?`)
	var count int
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sent applications: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of records per status.
func (s *Store) CountByStatus(ctx context.Context) (map[types.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[types.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	return counts, nil
}

// MarkSent transitions a pending record to sent and stamps date_applied.
// The status guard in the WHERE clause is what makes a second dispatch of
// the same record impossible; returns ErrNotPending when the guard fails.
func (s *Store) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	query := s.rebind(`UPDATE applications
		SET status = ?, date_applied = ?, application_method = ?, last_updated = ?
		WHERE id = ? AND status = ?`)
	result, err := s.db.ExecContext(ctx, query,
		string(types.StatusSent), sentAt, MethodEmail, sentAt, id, string(types.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to mark application %d sent: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark application %d sent: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotPending, id)
	}
	return nil
}

// SetContactInfo stores enrichment results on a record. Existing values are
// kept when enrichment found nothing for a field.
func (s *Store) SetContactInfo(ctx context.Context, id int64, info types.ContactInfo) error {
	phone := ""
	if len(info.Phones) > 0 {
		phone = info.Phones[0]
	}

	query := s.rebind(`UPDATE applications
		SET contact_email   = COALESCE(NULLIF(?, ''), contact_email),
		    contact_phone   = COALESCE(NULLIF(?, ''), contact_phone),
		    company_website = COALESCE(NULLIF(?, ''), company_website),
		    contact_person  = COALESCE(NULLIF(?, ''), contact_person),
		    last_updated    = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		info.BestEmail(), phone, info.Website, info.Person, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set contact info for application %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set contact info for application %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("application not found: %d", id)
	}
	return nil
}

// UpdateStatus applies a manual tracking update. Only non-zero fields of
// upd are written; a response-family status also stamps date_contacted.
func (s *Store) UpdateStatus(ctx context.Context, id int64, upd TrackUpdate) error {
	if upd.Status != "" && !upd.Status.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownStatus, upd.Status)
	}

	sets := []string{"last_updated = ?"}
	args := []any{time.Now()}

	if upd.Status != "" {
		sets = append(sets, "status = ?")
		args = append(args, string(upd.Status))
		if upd.Status.Responded() {
			sets = append(sets, "date_contacted = ?")
			args = append(args, time.Now())
		}
	}
	if upd.Notes != "" {
		sets = append(sets, "notes = ?")
		args = append(args, upd.Notes)
	}
	if upd.Feedback != "" {
		sets = append(sets, "feedback = ?")
		args = append(args, upd.Feedback)
	}
	if upd.RejectionReason != "" {
		sets = append(sets, "rejection_reason = ?")
		args = append(args, upd.RejectionReason)
	}
	if upd.ResponseType != "" {
		sets = append(sets, "response_type = ?")
		args = append(args, upd.ResponseType)
	}
	if upd.ResponseContent != "" {
		sets = append(sets, "response_content = ?")
		args = append(args, upd.ResponseContent)
	}

	query := s.rebind("UPDATE applications SET " + strings.Join(sets, ", ") + " WHERE id = ?")
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update application %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update application %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("application not found: %d", id)
	}
	return nil
}

// ScheduleInterview records interview details and moves the record to the
// interview status.
func (s *Store) ScheduleInterview(ctx context.Context, id int64, details InterviewDetails) error {
	now := time.Now()
	query := s.rebind(`UPDATE applications
		SET interview_scheduled = ?, interview_date = ?, interview_time = ?,
		    interview_type = ?, interview_location = ?,
		    status = ?, date_contacted = ?, last_updated = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		true, details.Date, details.Time, details.Type, details.Location,
		string(types.StatusInterview), now, now, id)
	if err != nil {
		return fmt.Errorf("failed to schedule interview for application %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to schedule interview for application %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("application not found: %d", id)
	}
	return nil
}
