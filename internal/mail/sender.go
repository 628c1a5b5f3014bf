// Package mail delivers confirmation codes over SMTP. Delivery is
// synchronous in the request path; the caller decides how a failure
// surfaces to the client.
package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Sender is the outbound notification channel for confirmation codes.
type Sender interface {
	SendConfirmationCode(to, code string) error
}

// SMTPConfig carries the connection settings for the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendConfirmationCode(to, code string) error {
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{to}
	e.Subject = "Your confirmation code"
	e.Text = []byte(fmt.Sprintf(
		"Use this code to finish signing in:\n\n%s\n\nIf you did not request it, ignore this message.", code))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		// 465 expects implicit TLS, 587 expects STARTTLS; anything else
		// is a misconfiguration rather than something to guess around.
		switch s.cfg.Port {
		case 465:
			return e.SendWithTLS(addr, auth, tlsConfig)
		case 587:
			return e.SendWithStartTLS(addr, auth, tlsConfig)
		default:
			return fmt.Errorf("unsupported port/TLS combination: port %d with TLS enabled", s.cfg.Port)
		}
	}
	return e.Send(addr, auth)
}
