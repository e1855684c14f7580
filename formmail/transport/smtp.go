package transport

import (
	"crypto/tls"

	"github.com/Pandentia/formmail/formmail"
	"gopkg.in/gomail.v2"
)

// SMTPConfig describes how to reach the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTP relays messages through an authenticated SMTP server.
// Port 465 uses implicit TLS.
type SMTP struct {
	dialer *gomail.Dialer
}

// NewSMTP creates an SMTP transport.
func NewSMTP(config SMTPConfig) *SMTP {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: config.Host,
		MinVersion: tls.VersionTLS12,
	}
	return &SMTP{dialer: dialer}
}

// Dial connects and authenticates against the relay.
func (s *SMTP) Dial() (Session, error) {
	closer, err := s.dialer.Dial()
	if err != nil {
		return nil, err
	}
	return &smtpSession{closer: closer}, nil
}

type smtpSession struct {
	closer gomail.SendCloser
}

func (s *smtpSession) Send(msg *formmail.Message) error {
	return gomail.Send(s.closer, buildMessage(msg))
}

func (s *smtpSession) Close() error {
	return s.closer.Close()
}

// buildMessage converts msg into a plain text gomail message.
// Nothing is attached or embedded, so no local file or URL is ever read.
func buildMessage(msg *formmail.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.FromAddress, msg.FromName)
	m.SetAddressHeader("Sender", msg.FromAddress, msg.Sender)
	m.SetHeader("To", msg.To)
	m.SetHeader("Reply-To", msg.ReplyTo)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	return m
}
