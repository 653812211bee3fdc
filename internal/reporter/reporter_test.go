package reporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

func newReportStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func createRecord(t *testing.T, s *store.Store, company, url, email string) int64 {
	t.Helper()
	app := store.NewApplication(types.JobListing{
		Title:   "Développeur Go",
		Company: company,
		URL:     url,
		Board:   types.BoardIndeed,
	})
	app.ContactEmail = email
	id, err := s.CreateApplication(context.Background(), app)
	require.NoError(t, err)
	return id
}

// seedMixed builds a table with one record in every state:
// two pending (one without email), one sent, one rejected, one future
// interview and one past interview.
func seedMixed(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	createRecord(t, s, "Attente SARL", "https://fr.indeed.com/voir-emploi?jk=p1", "rh@attente.fr")
	createRecord(t, s, "Sans Email SAS", "https://fr.indeed.com/voir-emploi?jk=p2", "")

	sent := createRecord(t, s, "Envoyé SA", "https://fr.indeed.com/voir-emploi?jk=s1", "rh@envoye.fr")
	require.NoError(t, s.MarkSent(ctx, sent, time.Now()))

	rejected := createRecord(t, s, "Refus SARL", "https://fr.indeed.com/voir-emploi?jk=r1", "rh@refus.fr")
	require.NoError(t, s.MarkSent(ctx, rejected, time.Now()))
	require.NoError(t, s.UpdateStatus(ctx, rejected, store.TrackUpdate{Status: types.StatusRejected}))

	future := createRecord(t, s, "Entretien Demain", "https://fr.indeed.com/voir-emploi?jk=i1", "rh@demain.fr")
	require.NoError(t, s.MarkSent(ctx, future, time.Now()))
	require.NoError(t, s.ScheduleInterview(ctx, future, store.InterviewDetails{
		Date: time.Now().Add(48 * time.Hour),
		Time: "14:00",
		Type: "visio",
	}))

	past := createRecord(t, s, "Entretien Passé", "https://fr.indeed.com/voir-emploi?jk=i2", "rh@passe.fr")
	require.NoError(t, s.MarkSent(ctx, past, time.Now()))
	require.NoError(t, s.ScheduleInterview(ctx, past, store.InterviewDetails{
		Date: time.Now().Add(-48 * time.Hour),
		Time: "10:00",
		Type: "sur site",
	}))
}

func TestStatusSummary_TotalsMatchTable(t *testing.T) {
	s := newReportStore(t)
	seedMixed(t, s)
	r := New(s, t.TempDir(), nil)

	summary, err := r.StatusSummary(context.Background())
	require.NoError(t, err)

	apps, err := s.ListApplications(context.Background(), store.ListOptions{})
	require.NoError(t, err)

	counted := Summary{}
	for _, app := range apps {
		counted.Total++
		switch app.Status {
		case types.StatusPending:
			counted.Pending++
		case types.StatusSent:
			counted.Sent++
		case types.StatusInterview:
			counted.Interview++
		case types.StatusRejected:
			counted.Rejected++
		case types.StatusAccepted:
			counted.Accepted++
		}
	}
	assert.Equal(t, counted, summary)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 2, summary.Pending)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 2, summary.Interview)
	assert.Equal(t, 1, summary.Rejected)
}

func TestSummary_ResponseRate(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{"empty table", Summary{}, "0%"},
		{"two of five responded", Summary{Total: 5, Interview: 1, Rejected: 1}, "40.0%"},
		{"one of three responded", Summary{Total: 3, Accepted: 1}, "33.3%"},
		{"nobody responded", Summary{Total: 4, Pending: 2, Sent: 2}, "0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.ResponseRate())
		})
	}
}

func TestSummary_String(t *testing.T) {
	s := Summary{Total: 6, Pending: 2, Sent: 1, Interview: 2, Rejected: 1}
	out := s.String()

	assert.Contains(t, out, strings.Repeat("=", 50))
	assert.Contains(t, out, "APPLICATION STATUS SUMMARY")
	assert.Contains(t, out, "Total Applications")
	assert.Contains(t, out, "Response Rate")
	assert.Contains(t, out, "50.0%")
}

func TestWriteAll_WritesFourWorkbooks(t *testing.T) {
	s := newReportStore(t)
	seedMixed(t, s)
	dir := t.TempDir()
	r := New(s, dir, nil)

	paths, err := r.WriteAll(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, name := range []string{FileAllApplications, FileCompanyContacts, FileInterviewSchedule, FileWeeklyReport} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, FileAllApplications))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 7, "header plus six records")
	assert.Equal(t, "Company Name", rows[0][0])
	assert.Equal(t, "Application Status", rows[0][6])

	var companies []string
	for _, row := range rows[1:] {
		companies = append(companies, row[0])
	}
	assert.Contains(t, companies, "Attente SARL")
	assert.Contains(t, companies, "Refus SARL")
}

func TestWrite_ContactsOnlyRecordsWithEmail(t *testing.T) {
	s := newReportStore(t)
	seedMixed(t, s)
	dir := t.TempDir()
	r := New(s, dir, nil)

	path, err := r.Write(context.Background(), KindContacts)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 6, "header plus the five records that have an email")
	for _, row := range rows[1:] {
		assert.NotEqual(t, "Sans Email SAS", row[0])
		assert.Contains(t, row[1], "@")
	}
}

func TestWrite_InterviewScheduleUpcomingOnly(t *testing.T) {
	s := newReportStore(t)
	seedMixed(t, s)
	dir := t.TempDir()
	r := New(s, dir, nil)

	path, err := r.Write(context.Background(), KindInterviews)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the one upcoming interview")
	assert.Equal(t, "Entretien Demain", rows[1][0])
	assert.Equal(t, "14:00", rows[1][3])
	assert.Equal(t, "visio", rows[1][4])
}

func TestWrite_WeeklyReport(t *testing.T) {
	s := newReportStore(t)
	seedMixed(t, s)
	dir := t.TempDir()
	r := New(s, dir, nil)

	path, err := r.Write(context.Background(), KindWeekly)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Four records were marked sent today; three carry a response stamp
	// (rejected plus the two interview schedules).
	assert.Equal(t, "4", rows[1][1])
	assert.Equal(t, "3", rows[1][2])
	assert.Equal(t, "75.0%", rows[1][3])
	assert.Equal(t, "2", rows[1][4], "interviews scheduled")
	assert.Equal(t, "1", rows[1][5], "rejections")
	assert.Equal(t, "0", rows[1][6], "offers")
}

func TestParseKind(t *testing.T) {
	for _, raw := range []string{"applications", "contacts", "INTERVIEWS", " weekly "} {
		kind, err := ParseKind(raw)
		require.NoError(t, err, raw)
		assert.NotEmpty(t, kind)
	}

	_, err := ParseKind("monthly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report type")
}
