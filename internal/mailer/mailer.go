// Package mailer delivers transactional email over SMTP. Delivery is best
// effort: a misconfigured or unreachable server is logged, never surfaced to
// the request that triggered the send.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/teacherly/teacherly-backend/internal/config"
)

// Mailer sends HTML email.
type Mailer interface {
	Send(ctx context.Context, subject, to, htmlBody string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg *config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// configured reports whether every setting needed for delivery is present.
func (m *SMTPMailer) configured() bool {
	return m.cfg.SMTPHost != "" &&
		m.cfg.SMTPUser != "" &&
		m.cfg.SMTPPassword != "" &&
		m.cfg.EmailFromAddress != ""
}

// Send delivers a single HTML message. When SMTP settings are incomplete the
// message is dropped with a log line and no error, so callers in the
// password-reset path never fail loudly.
func (m *SMTPMailer) Send(ctx context.Context, subject, to, htmlBody string) error {
	if !m.configured() {
		m.log.Error().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP settings are not fully configured, dropping email")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.EmailFromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, m.cfg.EmailFromAddress, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
