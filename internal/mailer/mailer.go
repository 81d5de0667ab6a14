// Package mailer sends transactional account emails over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"fintrack/internal/config"
)

// Mailer sends plain-text emails.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a Mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// WelcomeBody returns the body of the account-created email.
func WelcomeBody(name string) string {
	return fmt.Sprintf("Hello %s,\n\nWelcome to our platform! Your account has been successfully created.\n\nBest regards,\nTeam", name)
}

// PasswordChangedBody returns the body of the password-update email.
func PasswordChangedBody(name string) string {
	return fmt.Sprintf("Hello %s,\n\nYour password has been successfully updated. If you did not initiate this change, please contact support immediately.\n\nBest regards,\nTeam", name)
}
