// Package mail handles outbound email delivery over SMTP.
package mail

import (
	"context"
	"log/slog"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/tastemapapp/tastemap-server/internal/errors"
)

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether enough configuration is present to reach a relay.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// SMTPMailer sends messages through an SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(cfg Config, logger *slog.Logger) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.Timeout = 20 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers a single message, honoring context cancellation.
// A relay failure surfaces as an upstream error so handlers can map it to 502.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)

	if msg.TextBody != "" {
		gm.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			gm.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		gm.SetBody("text/html", msg.HTMLBody)
	}

	// gomail has no context support, so run the send in a goroutine and
	// race it against ctx. The send itself still times out via the dialer.
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.dialer.DialAndSend(gm)
	}()

	select {
	case <-ctx.Done():
		return errors.Upstream("mail delivery canceled").WithCause(ctx.Err())
	case err := <-errCh:
		if err != nil {
			m.logger.Error("Failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
			return errors.Upstream("mail delivery failed").WithCause(err)
		}
	}

	m.logger.Debug("Email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// LogMailer writes messages to the log instead of delivering them.
// Used in development and tests where no relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and succeeds.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("Email delivery skipped (no relay configured)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}
