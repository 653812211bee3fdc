package reporter

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

const (
	stampLayout = "2006-01-02 15:04"
	dayLayout   = "2006-01-02"
)

func fmtStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(stampLayout)
}

func fmtDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayLayout)
}

func (r *Reporter) allRows(apps []store.Application) ([]string, [][]any) {
	headers := []string{
		"Company Name", "Job Title", "Location", "Job Board", "Posted Date",
		"Date Applied", "Application Status", "Date Contacted", "Response Type",
		"Interview Scheduled", "Interview Date", "Interview Type",
		"Company Email", "Company Phone", "Notes",
	}
	rows := make([][]any, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []any{
			app.CompanyName, app.JobTitle, app.Location, app.JobBoard, app.PostedDate,
			fmtStamp(app.DateApplied), string(app.Status), fmtStamp(app.DateContacted), app.ResponseType,
			app.InterviewScheduled, fmtDay(app.InterviewDate), app.InterviewType,
			app.ContactEmail, app.ContactPhone, app.Notes,
		})
	}
	return headers, rows
}

func (r *Reporter) contactRows(apps []store.Application) ([]string, [][]any) {
	headers := []string{
		"Company Name", "Contact Email", "Contact Phone", "Company Website",
		"Contact Person", "Last Updated",
	}
	var rows [][]any
	for _, app := range apps {
		if app.ContactEmail == "" {
			continue
		}
		updated := app.LastUpdated
		rows = append(rows, []any{
			app.CompanyName, app.ContactEmail, app.ContactPhone, app.CompanyWebsite,
			app.ContactPerson, fmtStamp(&updated),
		})
	}
	return headers, rows
}

// interviewRows lists upcoming interviews only, soonest first.
func (r *Reporter) interviewRows(apps []store.Application) ([]string, [][]any) {
	headers := []string{
		"Company Name", "Job Title", "Interview Date", "Interview Time",
		"Interview Type", "Interview Location", "Contact Email", "Contact Phone", "Notes",
	}

	var upcoming []store.Application
	now := r.now()
	for _, app := range apps {
		if !app.InterviewScheduled || app.InterviewDate == nil {
			continue
		}
		if app.InterviewDate.Before(now) {
			continue
		}
		upcoming = append(upcoming, app)
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].InterviewDate.Before(*upcoming[j].InterviewDate)
	})

	rows := make([][]any, 0, len(upcoming))
	for _, app := range upcoming {
		rows = append(rows, []any{
			app.CompanyName, app.JobTitle, fmtDay(app.InterviewDate), app.InterviewTime,
			app.InterviewType, app.InterviewLocation, app.ContactEmail, app.ContactPhone, app.Notes,
		})
	}
	return headers, rows
}

// weeklyRows is a single-row digest of the last seven days.
func (r *Reporter) weeklyRows(apps []store.Application) ([]string, [][]any) {
	headers := []string{
		"Week Starting", "Applications Sent", "Responses Received", "Response Rate",
		"Interviews Scheduled", "Rejections", "Offers",
	}

	weekAgo := r.now().AddDate(0, 0, -7)
	var sent, responses, interviews, rejections, offers int
	for _, app := range apps {
		if app.DateApplied != nil && app.DateApplied.After(weekAgo) {
			sent++
		}
		if app.DateContacted == nil || !app.DateContacted.After(weekAgo) {
			continue
		}
		responses++
		if app.InterviewScheduled {
			interviews++
		}
		switch app.Status {
		case types.StatusRejected:
			rejections++
		case types.StatusAccepted:
			offers++
		}
	}

	rate := "0%"
	if sent > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(responses)/float64(sent)*100)
	}
	row := []any{weekAgo.Format(dayLayout), sent, responses, rate, interviews, rejections, offers}
	return headers, [][]any{row}
}

// writeWorkbook writes a single-sheet .xlsx with a header row.
func writeWorkbook(path string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
