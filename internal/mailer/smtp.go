// Package mailer - smtp.go sends through a personal SMTP account.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"
)

// implicitTLSPort is the SMTPS port, connected with TLS from the first
// byte. Every other port is upgraded with STARTTLS after the greeting.
const implicitTLSPort = 465

// SMTP implements Transport over net/smtp.
type SMTP struct {
	host     string
	port     int
	username string
	password string
	logger   *zap.Logger
}

// NewSMTP builds an SMTP transport. username doubles as the login and,
// typically, the From address.
func NewSMTP(host string, port int, username, password string, logger *zap.Logger) *SMTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTP{host: host, port: port, username: username, password: password, logger: logger}
}

// Send implements Transport.
func (t *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ValidateMessage(msg); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	id := messageID(msg.From)
	message := []byte(buildMessage(msg, id, time.Now()))
	addr := fmt.Sprintf("%s:%d", t.host, t.port)

	var auth smtp.Auth
	if t.username != "" && t.password != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}

	var err error
	if t.port == implicitTLSPort {
		err = t.sendImplicitTLS(addr, auth, msg.From, msg.To, message)
	} else {
		err = t.sendStartTLS(addr, auth, msg.From, msg.To, message)
	}
	if err != nil {
		return err
	}

	t.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("messageId", id))
	return nil
}

// sendImplicitTLS opens a TLS connection first, the SMTPS handshake used by
// port 465 providers like Gmail.
func (t *SMTP) sendImplicitTLS(addr string, auth smtp.Auth, from, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: t.host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	return t.transact(client, auth, from, to, msg)
}

// sendStartTLS connects in clear and upgrades the session.
func (t *SMTP) sendStartTLS(addr string, auth smtp.Auth, from, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(&tls.Config{ServerName: t.host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	return t.transact(client, auth, from, to, msg)
}

// transact runs the mail transaction on an established session.
func (t *SMTP) transact(client *smtp.Client, auth smtp.Auth, from, to string, msg []byte) error {
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}
