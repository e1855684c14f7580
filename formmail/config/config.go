package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Pandentia/formmail/formmail"
	"github.com/Pandentia/formmail/formmail/transport"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Mail holds the relay credentials and destination.
type Mail struct {
	User      string `env:"MAIL_USER,notEmpty"`
	Password  string `env:"MAIL_PASS,notEmpty"`
	To        string `env:"MAIL_SEND_TO,notEmpty"`
	SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.dreamhost.com"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"465"`
	Transport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
}

// Mailbox returns the account and destination messages are relayed through.
func (m *Mail) Mailbox() formmail.Mailbox {
	return formmail.Mailbox{User: m.User, To: m.To}
}

// NewTransport creates the transport selected by MAIL_TRANSPORT.
func (m *Mail) NewTransport(logger zerolog.Logger) transport.Transport {
	if m.Transport == transport.KindLog {
		return &transport.Log{Logger: logger}
	}
	return transport.NewSMTP(transport.SMTPConfig{
		Host:     m.SMTPHost,
		Port:     m.SMTPPort,
		Username: m.User,
		Password: m.Password,
	})
}

// Validate checks values the environment parser cannot.
func (m *Mail) Validate() error {
	if m.SMTPPort <= 0 || m.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP_PORT: %d", m.SMTPPort)
	}
	switch m.Transport {
	case transport.KindSMTP, transport.KindLog:
	default:
		return fmt.Errorf("invalid MAIL_TRANSPORT: %q", m.Transport)
	}
	return nil
}

// Load reads the mail configuration from the environment.
// The given .env files are loaded first; missing files are skipped and
// variables already set in the environment are never overridden.
func Load(envFiles ...string) (*Mail, error) {
	for _, file := range envFiles {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Mail{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
