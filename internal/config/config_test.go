package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "laurel.db", cfg.DBPath)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "hireme", cfg.SecretPhrase)
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LAUREL_ADDR", ":9000")
	t.Setenv("LAUREL_MODE", "debug")
	t.Setenv("LAUREL_ADMIN_PASSWORD", "hunter2")
	t.Setenv("SMTP_USER", "site@example.com")
	t.Setenv("SMTP_PASS", "app-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
	assert.True(t, cfg.SMTPConfigured())
	assert.Equal(t, "site@example.com", cfg.ContactTo, "contact address defaults to the smtp user")
}

func TestLoad_InvalidMode(t *testing.T) {
	t.Setenv("LAUREL_MODE", "verbose")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid mode")
}

func TestValidate_RejectsEmptySecret(t *testing.T) {
	cfg := Config{Addr: ":8080", DBPath: "x.db", Mode: "release", SecretPhrase: "hireme"}
	err := cfg.Validate()
	assert.ErrorContains(t, err, "achievement secret")
}

func TestValidate_ContactToOverride(t *testing.T) {
	cfg := Config{
		Addr: ":8080", DBPath: "x.db", Mode: "release",
		AchievementSecret: "k", SecretPhrase: "p",
		SMTPUser: "site@example.com", ContactTo: "me@example.com",
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "me@example.com", cfg.ContactTo)
}
