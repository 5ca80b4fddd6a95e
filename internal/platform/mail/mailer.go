// Package mail delivers notification messages (password-reset secrets) to
// users. Delivery mechanics are a collaborator of the auth core, not part of
// it: the core depends only on the Mailer contract.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"os"
	"time"
)

// ErrDelivery is returned when a message could not be handed to the
// transport. Callers roll back any state that assumed delivery.
var ErrDelivery = errors.New("failed to deliver message")

// Mailer sends a plain-text message to a destination address.
// Implementations must respect ctx cancellation and fail with ErrDelivery
// (wrapped) on any transport problem.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host    string        // SMTP server host
	Port    string        // SMTP server port
	From    string        // Sender address
	Timeout time.Duration // Dial/send timeout
}

// LoadConfig loads SMTP configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Host:    os.Getenv("SMTP_HOST"),
		Port:    os.Getenv("SMTP_PORT"),
		From:    os.Getenv("SMTP_FROM"),
		Timeout: 10 * time.Second,
	}
}

// SMTPMailer sends messages over plain SMTP.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates an SMTPMailer with the given configuration.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{cfg: cfg}
}

// Send delivers the message, bounded by the configured timeout and by ctx.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	deadline := time.Now().Add(m.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close smtp connection", "error", err)
		}
	}()
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer func() {
		_ = client.Quit()
	}()

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.cfg.From, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

// LogMailer writes messages to the structured log instead of sending them.
// Used in development when no SMTP host is configured.
type LogMailer struct {
	// RevealBody logs the full body at debug level. The body carries the
	// reset secret, so this must stay off outside local development.
	RevealBody bool
}

// Send logs the message. The body is hidden unless RevealBody is set.
func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	slog.Info("mail delivery (dev mode)", "to", to, "subject", subject, "body_bytes", len(body))
	if m.RevealBody {
		slog.Debug("mail body (dev mode)", "to", to, "body", body)
	}
	return nil
}
