package store

import (
	"time"

	"github.com/mathieu/job-hunter/internal/types"
)

// MethodEmail is the default application method recorded on dispatch.
const MethodEmail = "email"

// Application represents one row of the applications table
type Application struct {
	ID int64 `json:"id"`

	// Listing data captured at scrape time
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	JobURL         string `json:"job_url"`
	JobDescription string `json:"job_description,omitempty"`
	Salary         string `json:"salary,omitempty"`
	Location       string `json:"location,omitempty"`
	JobBoard       string `json:"job_board"`
	PostedDate     string `json:"posted_date,omitempty"`

	// Enrichment
	ContactEmail   string `json:"contact_email,omitempty"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	ContactPerson  string `json:"contact_person,omitempty"`

	// Dispatch
	DateApplied *time.Time   `json:"date_applied,omitempty"`
	Method      string       `json:"application_method"`
	Status      types.Status `json:"status"`

	// Response tracking
	DateContacted   *time.Time `json:"date_contacted,omitempty"`
	ResponseType    string     `json:"response_type,omitempty"`
	ResponseContent string     `json:"response_content,omitempty"`

	// Interview details
	InterviewScheduled bool       `json:"interview_scheduled"`
	InterviewDate      *time.Time `json:"interview_date,omitempty"`
	InterviewTime      string     `json:"interview_time,omitempty"`
	InterviewType      string     `json:"interview_type,omitempty"`
	InterviewLocation  string     `json:"interview_location,omitempty"`

	// Free text
	Notes           string `json:"notes,omitempty"`
	Feedback        string `json:"feedback,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	// Timestamps
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// Sendable reports whether the record is still eligible for dispatch.
func (a *Application) Sendable() bool {
	return a.Status.Sendable()
}

// NewApplication builds a pending record from a scraped listing.
func NewApplication(listing types.JobListing) Application {
	return Application{
		CompanyName:    listing.Company,
		JobTitle:       listing.Title,
		JobURL:         listing.URL,
		JobDescription: listing.Description,
		Salary:         listing.Salary,
		Location:       listing.Location,
		JobBoard:       listing.Board,
		PostedDate:     listing.PostedDate,
		Method:         MethodEmail,
		Status:         types.StatusPending,
	}
}

// ListOptions holds optional filters for listing applications
type ListOptions struct {
	Status  types.Status
	Board   string
	Company string
	Limit   int
}

// InterviewDetails carries the fields set when an interview is scheduled
type InterviewDetails struct {
	Date     time.Time
	Time     string
	Type     string
	Location string
}

// TrackUpdate carries the fields a manual status update may touch.
// Zero-valued fields are left unchanged.
type TrackUpdate struct {
	Status          types.Status
	Notes           string
	Feedback        string
	RejectionReason string
	ResponseType    string
	ResponseContent string
}
