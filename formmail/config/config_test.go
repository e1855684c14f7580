package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Pandentia/formmail/formmail/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMailEnv(t *testing.T) {
	t.Setenv("MAIL_USER", "mailer@example.com")
	t.Setenv("MAIL_PASS", "secret")
	t.Setenv("MAIL_SEND_TO", "inbox@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setMailEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mailer@example.com", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "inbox@example.com", cfg.To)
	assert.Equal(t, "smtp.dreamhost.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "smtp", cfg.Transport)
	assert.Equal(t, "inbox@example.com", cfg.Mailbox().To)
}

func TestLoadMissingVariables(t *testing.T) {
	for _, name := range []string{"MAIL_USER", "MAIL_PASS", "MAIL_SEND_TO"} {
		t.Run(name, func(t *testing.T) {
			setMailEnv(t)
			t.Setenv(name, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"port out of range", "SMTP_PORT", "70000"},
		{"port not a number", "SMTP_PORT", "smtp"},
		{"unknown transport", "MAIL_TRANSPORT", "carrier-pigeon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMailEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	content := "MAIL_USER=file@example.com\nMAIL_PASS=from-file\nMAIL_SEND_TO=file-inbox@example.com\nMAIL_TRANSPORT=log\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	// already set variables win over the file
	t.Setenv("MAIL_PASS", "from-env")
	for _, key := range []string{"MAIL_USER", "MAIL_SEND_TO", "MAIL_TRANSPORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(filepath.Join(dir, "missing.env"), file)
	require.NoError(t, err)

	assert.Equal(t, "file@example.com", cfg.User)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, "file-inbox@example.com", cfg.To)
	assert.Equal(t, "log", cfg.Transport)
}

func TestNewTransport(t *testing.T) {
	setMailEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.IsType(t, &transport.SMTP{}, cfg.NewTransport(zerolog.Nop()))

	cfg.Transport = transport.KindLog
	assert.IsType(t, &transport.Log{}, cfg.NewTransport(zerolog.Nop()))
}
