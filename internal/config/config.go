// Package config loads runtime settings from the environment. A .env
// file is honored when present (loaded by the entrypoint), so local
// development needs no exported variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the site.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"LAUREL_ADDR" envDefault:":8080"`

	// DBPath locates the SQLite database file.
	DBPath string `env:"LAUREL_DB_PATH" envDefault:"laurel.db"`

	// Mode selects the gin mode: debug, release, or test.
	Mode string `env:"LAUREL_MODE" envDefault:"release"`

	// AdminPassword gates the admin area. Empty disables admin login.
	AdminPassword string `env:"LAUREL_ADMIN_PASSWORD"`

	// AchievementSecret keys the tamper-evidence signature over stored
	// unlock state.
	AchievementSecret string `env:"LAUREL_ACHIEVEMENT_SECRET" envDefault:"laurel"`

	// SecretPhrase is the hidden typed phrase that unlocks the hacker
	// achievement.
	SecretPhrase string `env:"LAUREL_SECRET_PHRASE" envDefault:"hireme"`

	// SMTP relay for contact-form notifications. Host or user left empty
	// means submissions are stored and logged but not emailed.
	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	// ContactTo receives contact notifications; defaults to SMTPUser.
	ContactTo string `env:"CONTACT_TO"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints and fills derived defaults.
func (c *Config) Validate() error {
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.AchievementSecret == "" {
		return fmt.Errorf("achievement secret must not be empty")
	}
	if c.SecretPhrase == "" {
		return fmt.Errorf("secret phrase must not be empty")
	}
	if c.ContactTo == "" {
		c.ContactTo = c.SMTPUser
	}
	return nil
}

// SMTPConfigured reports whether the relay has enough settings to send.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}
