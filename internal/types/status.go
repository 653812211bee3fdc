// Package types provides type definitions for the application records shared across the job-hunter pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned when a string does not name a known status.
var ErrUnknownStatus = errors.New("unknown application status")

// Status tracks where an application record is in its lifecycle.
type Status string

// Lifecycle states. A record is created pending, becomes sent after a
// successful dispatch, and moves to one of the response states by manual
// tracking.
const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusSent, StatusInterview, StatusRejected, StatusAccepted}
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Sendable reports whether a record in this status is still eligible for an
// email dispatch. Only pending records are; a record never goes to sent twice.
func (s Status) Sendable() bool {
	return s == StatusPending
}

// Responded reports whether the status represents a company response.
func (s Status) Responded() bool {
	switch s {
	case StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// ParseStatus converts user input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

func (s Status) String() string {
	return string(s)
}
