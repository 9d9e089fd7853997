package mailer

import (
	"fmt"

	"market-auth/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers plaintext mail. Send failures are the caller's to degrade on.
type Mailer interface {
	Send(subject, body string, to ...string) error
}

// SMTPMailer delivers through an SMTP relay via gomail
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(config utils.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
	}
}

func (m *SMTPMailer) Send(subject, body string, to ...string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %v: %w", to, err)
	}
	return nil
}

// LogMailer logs instead of sending. Used when no SMTP host is configured,
// so codes still show up in development the way OTPs do on a dev console.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.With(zap.String("mailer", "log"))}
}

func (m *LogMailer) Send(subject, body string, to ...string) error {
	m.log.Info("Mail (not sent, no SMTP host configured)",
		zap.String("subject", subject),
		zap.String("body", body),
		zap.Strings("to", to),
	)
	return nil
}
