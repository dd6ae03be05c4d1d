package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"apextelemetry/internal"
	"apextelemetry/internal/config"
	"apextelemetry/ports"
)

// Mailer sends notification email over SMTP. When no credentials are
// configured it logs the message and reports success, so notification
// failures never block the main flow.
type Mailer struct {
	cfg config.MailConfig
	log *internal.Logger
}

// NewMailer creates a mailer from the mail configuration.
func NewMailer(cfg config.MailConfig) ports.Mailer {
	return &Mailer{cfg: cfg, log: internal.DefaultLogger}
}

// Send delivers one plain-text message.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		m.log.Info("mail not configured, skipping notification to %s: %s", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.log.Error("mail delivery to %s failed: %v", to, err)
			return err
		}
		m.log.Debug("mail sent to %s: %s", to, subject)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
