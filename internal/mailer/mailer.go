package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/uday8116/swift-basket/internal/config"
)

const from = "Swift Basket <noreply@swiftbasket.com>"

// SMTPMailer sends plain-text mail through a single SMTP relay. Delivery is
// best-effort at the call sites, a failed send must never fail the request.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

func New(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		Host:     cfg.SMTP_HOST,
		Port:     cfg.SMTP_PORT,
		Username: cfg.SMTP_EMAIL,
		Password: cfg.SMTP_PASSWORD,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	if err := smtp.SendMail(addr, auth, m.Username, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
