package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/robertopeiro12/buscocredito-sub002/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailerNotConfigured is returned when SMTP_HOST is empty.
var ErrMailerNotConfigured = errors.New("mailer: SMTP_HOST not configured")

// Mailer sends plain-text notification e-mails over SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a single message to one recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		return ErrMailerNotConfigured
	}
	e := email.NewEmail()
	e.From = fmt.Sprintf("BuscoCredito <%s>", m.user)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
