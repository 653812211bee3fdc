// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultDatabaseURL  = "sqlite://applications.db"
	DefaultSMTPHost     = "smtp.gmail.com"
	DefaultSMTPPort     = 465
	DefaultAWSRegion    = "eu-west-3"
	DefaultMaxPerDay    = 5
	DefaultDelaySeconds = 10
	DefaultRegion       = "Île-de-France"
	DefaultCities       = "Paris"
	DefaultQueries      = "développeur,ingénieur logiciel,software engineer"
)

// Config holds every knob the tool reads from the environment.
// All fields are optional at load time; operations that need credentials
// validate them just before use.
type Config struct {
	// Storage
	DatabaseURL string `mapstructure:"database_url" validate:"required"`

	// Email dispatch
	EmailAddress  string `mapstructure:"email_address" validate:"omitempty,email"`
	EmailPassword string `mapstructure:"email_password"`
	EmailProvider string `mapstructure:"email_provider" validate:"oneof=smtp ses"`
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      int    `mapstructure:"smtp_port" validate:"gt=0,lte=65535"`
	AWSRegion     string `mapstructure:"aws_region"`

	// Throttle
	MaxPerDay    int `mapstructure:"max_applications_per_day" validate:"gte=1"`
	DelaySeconds int `mapstructure:"application_delay_seconds" validate:"gte=0"`

	// Search targeting
	TargetRegion  string `mapstructure:"target_region"`
	TargetCities  string `mapstructure:"target_cities"`  // comma-separated
	SearchQueries string `mapstructure:"search_queries"` // comma-separated

	// Candidate identity used in letters
	CandidateName string `mapstructure:"candidate_name"`

	// Behavior
	HeadlessBrowser bool   `mapstructure:"headless_browser"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`
	Verbose         bool   `mapstructure:"verbose"`

	// Optional integrations
	GeminiAPIKey       string `mapstructure:"gemini_api_key"`
	GoogleSearchAPIKey string `mapstructure:"google_search_api_key"`
	GoogleSearchCX     string `mapstructure:"google_search_cx"`
}

// Load reads configuration from the process environment. Every key is
// registered with a default so AutomaticEnv can override it; .env loading
// happens earlier, in main.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every config key. Viper only applies environment
// overrides for keys it knows about, so unset-by-default keys are
// registered with empty values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("email_address", "")
	v.SetDefault("email_password", "")
	v.SetDefault("email_provider", "smtp")
	v.SetDefault("smtp_host", DefaultSMTPHost)
	v.SetDefault("smtp_port", DefaultSMTPPort)
	v.SetDefault("aws_region", DefaultAWSRegion)
	v.SetDefault("max_applications_per_day", DefaultMaxPerDay)
	v.SetDefault("application_delay_seconds", DefaultDelaySeconds)
	v.SetDefault("target_region", DefaultRegion)
	v.SetDefault("target_cities", DefaultCities)
	v.SetDefault("search_queries", DefaultQueries)
	v.SetDefault("candidate_name", "")
	v.SetDefault("headless_browser", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("verbose", false)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("google_search_api_key", "")
	v.SetDefault("google_search_cx", "")
}

// Validate checks that the configuration has valid values.
// Credentials are intentionally not required here; ValidateEmail covers
// them for the operations that send.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ValidateEmail checks that the configuration can actually dispatch email.
// Called before any send-capable operation starts so that missing
// credentials abort the run before any stage does work.
func (c *Config) ValidateEmail() error {
	if c.EmailAddress == "" {
		return fmt.Errorf("config error: EMAIL_ADDRESS is required to send applications")
	}
	if c.EmailProvider == "smtp" && c.EmailPassword == "" {
		return fmt.Errorf("config error: EMAIL_PASSWORD is required for the smtp provider")
	}
	if c.EmailProvider == "ses" && c.AWSRegion == "" {
		return fmt.Errorf("config error: AWS_REGION is required for the ses provider")
	}
	return nil
}

// Delay returns the configured pause between consecutive dispatches.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// Cities returns the configured target cities as a list.
func (c *Config) Cities() []string {
	return splitList(c.TargetCities)
}

// Queries returns the configured search queries as a list.
func (c *Config) Queries() []string {
	return splitList(c.SearchQueries)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
