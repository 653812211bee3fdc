package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, "smtp", cfg.EmailProvider)
	assert.Equal(t, DefaultSMTPHost, cfg.SMTPHost)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTPPort)
	assert.Equal(t, DefaultMaxPerDay, cfg.MaxPerDay)
	assert.Equal(t, DefaultDelaySeconds, cfg.DelaySeconds)
	assert.Equal(t, DefaultRegion, cfg.TargetRegion)
	assert.False(t, cfg.HeadlessBrowser)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MAX_APPLICATIONS_PER_DAY", "3")
	t.Setenv("APPLICATION_DELAY_SECONDS", "1")
	t.Setenv("EMAIL_ADDRESS", "me@example.com")
	t.Setenv("TARGET_CITIES", "Paris, Lyon ,Marseille")
	t.Setenv("HEADLESS_BROWSER", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxPerDay)
	assert.Equal(t, 1, cfg.DelaySeconds)
	assert.Equal(t, "me@example.com", cfg.EmailAddress)
	assert.Equal(t, []string{"Paris", "Lyon", "Marseille"}, cfg.Cities())
	assert.True(t, cfg.HeadlessBrowser)
}

func TestLoad_InvalidEmailAddress(t *testing.T) {
	t.Setenv("EMAIL_ADDRESS", "not-an-address")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config error")
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "carrier-pigeon")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_ZeroMaxPerDay(t *testing.T) {
	cfg := &Config{
		DatabaseURL:   DefaultDatabaseURL,
		EmailProvider: "smtp",
		SMTPPort:      DefaultSMTPPort,
		MaxPerDay:     0,
	}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateEmail_MissingAddress(t *testing.T) {
	cfg := &Config{EmailProvider: "smtp"}

	err := cfg.ValidateEmail()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_ADDRESS")
}

func TestValidateEmail_SMTPNeedsPassword(t *testing.T) {
	cfg := &Config{
		EmailProvider: "smtp",
		EmailAddress:  "me@example.com",
	}

	err := cfg.ValidateEmail()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_PASSWORD")
}

func TestValidateEmail_SESNeedsNoPassword(t *testing.T) {
	cfg := &Config{
		EmailProvider: "ses",
		EmailAddress:  "me@example.com",
		AWSRegion:     "eu-west-3",
	}

	assert.NoError(t, cfg.ValidateEmail())
}

func TestDelay(t *testing.T) {
	cfg := &Config{DelaySeconds: 10}
	assert.Equal(t, 10*time.Second, cfg.Delay())
}

func TestQueries_SkipsEmptyEntries(t *testing.T) {
	cfg := &Config{SearchQueries: "développeur, ,ingénieur logiciel,"}
	assert.Equal(t, []string{"développeur", "ingénieur logiciel"}, cfg.Queries())
}
