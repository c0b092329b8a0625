package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "API_KEY", "DATA_FILE", "CONTACTS_FILE", "UPLOAD_DIR",
		"DATABASE_URL", "SMTP_HOST", "SMTP_PORT", "SMTP_SENDER",
		"SMTP_PASSWORD", "ADMIN_EMAIL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "data/data.json", cfg.DataFile)
	assert.Equal(t, "data/contacts.json", cfg.ContactsFile)
	assert.Equal(t, "static/uploads", cfg.UploadDir)
	assert.Equal(t, "", cfg.DatabaseDSN, "no database by default")
	assert.Equal(t, "", cfg.SMTPHost, "email disabled by default")
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "super-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/labmath")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "super-secret", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/labmath", cfg.DatabaseDSN)
}
