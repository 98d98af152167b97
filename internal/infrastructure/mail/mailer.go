package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// dialer is the part of gomail.Dialer the mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends HTML mail through an SMTP relay.
type SMTPMailer struct {
	from   string
	dialer dialer
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send delivers one message. gomail has no context support; ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.message(to, subject, htmlBody)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) message(to, subject, htmlBody string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return msg
}
