package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mathieu/job-hunter/internal/store"
	"github.com/mathieu/job-hunter/internal/types"
)

var trackCommand = &cobra.Command{
	Use:   "track <id>",
	Short: "Show or update one application record",
	Long: `Shows the full detail of one application record. With mutation flags it
updates the record instead: --status moves it through the lifecycle,
--interview-date schedules an interview, and the remaining flags attach
response details and notes.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

var (
	trackStatus            string
	trackNotes             string
	trackFeedback          string
	trackRejectionReason   string
	trackResponseType      string
	trackResponseContent   string
	trackInterviewDate     string
	trackInterviewTime     string
	trackInterviewType     string
	trackInterviewLocation string
)

func init() {
	trackCommand.Flags().StringVar(&trackStatus, "status", "", "New status (pending, sent, interview, rejected, accepted)")
	trackCommand.Flags().StringVar(&trackNotes, "notes", "", "Free-form notes")
	trackCommand.Flags().StringVar(&trackFeedback, "feedback", "", "Feedback received")
	trackCommand.Flags().StringVar(&trackRejectionReason, "rejection-reason", "", "Why the application was rejected")
	trackCommand.Flags().StringVar(&trackResponseType, "response-type", "", "How the company responded (email, phone, ...)")
	trackCommand.Flags().StringVar(&trackResponseContent, "response-content", "", "What the company said")
	trackCommand.Flags().StringVar(&trackInterviewDate, "interview-date", "", "Interview date (YYYY-MM-DD)")
	trackCommand.Flags().StringVar(&trackInterviewTime, "interview-time", "", "Interview time")
	trackCommand.Flags().StringVar(&trackInterviewType, "interview-type", "", "Interview type (phone, video, on-site)")
	trackCommand.Flags().StringVar(&trackInterviewLocation, "interview-location", "", "Interview location or link")
	rootCmd.AddCommand(trackCommand)
}

func runTrack(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid application id %q", args[0])
	}

	ctx := context.Background()

	_, log, st, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer func() { _ = log.Sync() }()

	if cmd.Flags().Changed("interview-date") {
		date, err := time.ParseInLocation("2006-01-02", trackInterviewDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid interview date %q, expected YYYY-MM-DD", trackInterviewDate)
		}
		details := store.InterviewDetails{
			Date:     date,
			Time:     trackInterviewTime,
			Type:     trackInterviewType,
			Location: trackInterviewLocation,
		}
		if err := st.ScheduleInterview(ctx, id, details); err != nil {
			return err
		}
	} else if trackHasUpdate(cmd) {
		upd := store.TrackUpdate{
			Notes:           trackNotes,
			Feedback:        trackFeedback,
			RejectionReason: trackRejectionReason,
			ResponseType:    trackResponseType,
			ResponseContent: trackResponseContent,
		}
		if trackStatus != "" {
			status, err := types.ParseStatus(trackStatus)
			if err != nil {
				return err
			}
			upd.Status = status
		}
		if err := st.UpdateStatus(ctx, id, upd); err != nil {
			return err
		}
	}

	app, err := st.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("application not found: %d", id)
	}

	fmt.Print(applicationDetail(app))
	return nil
}

func trackHasUpdate(cmd *cobra.Command) bool {
	for _, name := range []string{"status", "notes", "feedback", "rejection-reason", "response-type", "response-content"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applicationDetail renders one record as the block printed by track.
func applicationDetail(app *store.Application) string {
	var b strings.Builder
	line := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "\n%s\n", line)
	fmt.Fprintf(&b, "APPLICATION DETAILS: %s (#%d)\n", app.CompanyName, app.ID)
	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "Job Title: %s\n", app.JobTitle)
	fmt.Fprintf(&b, "Location: %s\n", app.Location)
	fmt.Fprintf(&b, "Job Board: %s\n", app.JobBoard)
	fmt.Fprintf(&b, "Posted: %s\n", orNA(app.PostedDate))
	fmt.Fprintf(&b, "\nAPPLICATION STATUS:\n")
	fmt.Fprintf(&b, "Date Applied: %s\n", fmtDetailTime(app.DateApplied))
	fmt.Fprintf(&b, "Status: %s\n", app.Status)
	fmt.Fprintf(&b, "Method: %s\n", app.Method)
	fmt.Fprintf(&b, "\nRESPONSE:\n")
	fmt.Fprintf(&b, "Date Contacted: %s\n", fmtDetailTime(app.DateContacted))
	fmt.Fprintf(&b, "Response Type: %s\n", orNA(app.ResponseType))
	fmt.Fprintf(&b, "Response: %s\n", orNA(app.ResponseContent))
	fmt.Fprintf(&b, "\nINTERVIEW:\n")
	fmt.Fprintf(&b, "Scheduled: %t\n", app.InterviewScheduled)
	fmt.Fprintf(&b, "Date: %s\n", fmtDetailTime(app.InterviewDate))
	fmt.Fprintf(&b, "Time: %s\n", orNA(app.InterviewTime))
	fmt.Fprintf(&b, "Type: %s\n", orNA(app.InterviewType))
	fmt.Fprintf(&b, "Location: %s\n", orNA(app.InterviewLocation))
	fmt.Fprintf(&b, "\nNOTES:\n")
	if app.Notes != "" {
		fmt.Fprintf(&b, "%s\n", app.Notes)
	} else {
		fmt.Fprintf(&b, "No notes\n")
	}
	fmt.Fprintf(&b, "%s\n\n", line)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func fmtDetailTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04")
}
