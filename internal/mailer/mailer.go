// Package mailer delivers application emails. Two transports implement the
// same interface: direct SMTP, and AWS SES for setups without a personal
// SMTP account.
package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one outgoing application email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Transport sends messages over one delivery mechanism.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// ValidateMessage checks the addresses on a message before any transport
// work happens.
func ValidateMessage(msg Message) error {
	if !isValidEmail(msg.To) {
		return fmt.Errorf("invalid 'to' email address: %s", msg.To)
	}
	if !isValidEmail(msg.From) {
		return fmt.Errorf("invalid 'from' email address: %s", msg.From)
	}
	return nil
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// messageID builds a unique Message-ID header value under the sender's
// domain.
func messageID(from string) string {
	domain := "localhost"
	if parts := strings.Split(from, "@"); len(parts) == 2 && parts[1] != "" {
		domain = parts[1]
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}

// buildMessage assembles the RFC 822 message for the SMTP transport.
func buildMessage(msg Message, id string, now time.Time) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString(fmt.Sprintf("Date: %s\r\n", now.Format(time.RFC1123Z)))
	builder.WriteString(fmt.Sprintf("Message-ID: %s\r\n", id))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(msg.Body)

	return builder.String()
}
