// Package reporter turns the applications table into spreadsheet reports
// and a console status summary.
package reporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

// Kind selects one report.
type Kind string

// Supported report kinds.
const (
	KindApplications Kind = "applications"
	KindContacts     Kind = "contacts"
	KindInterviews   Kind = "interviews"
	KindWeekly       Kind = "weekly"
)

// Workbook file names, one per kind.
const (
	FileAllApplications   = "all_applications.xlsx"
	FileCompanyContacts   = "company_contacts.xlsx"
	FileInterviewSchedule = "interview_schedule.xlsx"
	FileWeeklyReport      = "weekly_report.xlsx"
)

// Kinds lists every report kind in generation order.
func Kinds() []Kind {
	return []Kind{KindApplications, KindContacts, KindInterviews, KindWeekly}
}

// ParseKind converts user input into a Kind.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case KindApplications, KindContacts, KindInterviews, KindWeekly:
		return k, nil
	}
	return "", fmt.Errorf("unknown report type %q (valid: applications, contacts, interviews, weekly)", raw)
}

// Reporter reads the applications table and writes reports into a directory.
type Reporter struct {
	store  *store.Store
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// New builds a Reporter writing into dir.
func New(st *store.Store, dir string, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{store: st, dir: dir, logger: logger, now: time.Now}
}

// Summary holds per-status record counts.
type Summary struct {
	Total     int
	Pending   int
	Sent      int
	Interview int
	Rejected  int
	Accepted  int
}

// Responded counts records whose company has answered.
func (s Summary) Responded() int {
	return s.Interview + s.Rejected + s.Accepted
}

// ResponseRate formats responded over total as a percentage.
func (s Summary) ResponseRate() string {
	if s.Total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.Responded())/float64(s.Total)*100)
}

// String renders the summary as the console banner block.
func (s Summary) String() string {
	line := strings.Repeat("=", 50)
	var b strings.Builder
	b.WriteString(line + "\n")
	b.WriteString("APPLICATION STATUS SUMMARY\n")
	b.WriteString(line + "\n")
	b.WriteString(summaryRow("Total Applications", s.Total))
	b.WriteString(summaryRow("Sent", s.Sent))
	b.WriteString(summaryRow("Pending Response", s.Pending))
	b.WriteString(summaryRow("Rejected", s.Rejected))
	b.WriteString(summaryRow("Accepted", s.Accepted))
	b.WriteString(summaryRow("Interview Scheduled", s.Interview))
	b.WriteString(summaryRow("Response Rate", s.ResponseRate()))
	b.WriteString(line)
	return b.String()
}

func summaryRow(label string, value any) string {
	const width = 40
	dots := width - len(label)
	if dots < 1 {
		dots = 1
	}
	return fmt.Sprintf("%s%s %v\n", label, strings.Repeat(".", dots), value)
}

// StatusSummary derives the summary from the table. Totals always equal the
// per-status counts because both come from the same read.
func (r *Reporter) StatusSummary(ctx context.Context) (Summary, error) {
	counts, err := r.store.CountByStatus(ctx)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		Pending:   counts[types.StatusPending],
		Sent:      counts[types.StatusSent],
		Interview: counts[types.StatusInterview],
		Rejected:  counts[types.StatusRejected],
		Accepted:  counts[types.StatusAccepted],
	}
	for _, n := range counts {
		s.Total += n
	}
	return s, nil
}

// Write generates one report and returns the written path.
func (r *Reporter) Write(ctx context.Context, kind Kind) (string, error) {
	apps, err := r.store.ListApplications(ctx, store.ListOptions{})
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	return r.write(kind, apps)
}

// WriteAll generates every report. A report that fails to build is logged
// and skipped; a store read failure aborts.
func (r *Reporter) WriteAll(ctx context.Context) ([]string, error) {
	apps, err := r.store.ListApplications(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	var paths []string
	for _, kind := range Kinds() {
		path, err := r.write(kind, apps)
		if err != nil {
			r.logger.Warn("report not written",
				zap.String("type", string(kind)),
				zap.Error(err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Reporter) write(kind Kind, apps []store.Application) (string, error) {
	var (
		file    string
		headers []string
		rows    [][]any
	)
	switch kind {
	case KindApplications:
		file = FileAllApplications
		headers, rows = r.allRows(apps)
	case KindContacts:
		file = FileCompanyContacts
		headers, rows = r.contactRows(apps)
	case KindInterviews:
		file = FileInterviewSchedule
		headers, rows = r.interviewRows(apps)
	case KindWeekly:
		file = FileWeeklyReport
		headers, rows = r.weeklyRows(apps)
	default:
		return "", fmt.Errorf("unknown report type %q", kind)
	}

	path := filepath.Join(r.dir, file)
	if err := writeWorkbook(path, headers, rows); err != nil {
		return "", err
	}
	r.logger.Info("report written",
		zap.String("type", string(kind)),
		zap.String("path", path),
		zap.Int("rows", len(rows)))
	return path, nil
}
