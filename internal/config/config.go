// Package config loads the site's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Zachkp/gamedev-portfolio/internal/carousel"
)

// Config is the full runtime configuration.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	GinMode      string `env:"GIN_MODE" envDefault:"debug"`
	DBPath       string `env:"DB_PATH" envDefault:"portfolio.db"`
	SeedProjects bool   `env:"SEED_PROJECTS" envDefault:"true"`

	AdminUsername     string `env:"ADMIN_USERNAME"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"` // bcrypt; overrides AdminPassword

	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`

	Carousel      carousel.Config `envPrefix:"CAROUSEL_"`
	IdleTTL       time.Duration   `env:"CAROUSEL_IDLE_TTL" envDefault:"30m"`
	SweepInterval time.Duration   `env:"CAROUSEL_SWEEP_INTERVAL" envDefault:"1m"`
	MaxSessions   int             `env:"CAROUSEL_MAX_SESSIONS" envDefault:"10000"`

	SMTP SMTP `envPrefix:"SMTP_"`
	// ContactTo receives contact form submissions.
	ContactTo string `env:"TO_EMAIL" envDefault:"hello@example.com"`
}

// SMTP holds outgoing mail settings.
type SMTP struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

// Configured reports whether credentials are present.
func (s SMTP) Configured() bool {
	return s.User != "" && s.Pass != ""
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	if c.DBPath == "" {
		return errors.New("db path is required")
	}
	if err := c.Carousel.Validate(); err != nil {
		return fmt.Errorf("carousel: %w", err)
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("carousel idle ttl must be positive, got %s", c.IdleTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("carousel sweep interval must be positive, got %s", c.SweepInterval)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("carousel max sessions must not be negative, got %d", c.MaxSessions)
	}
	if c.VisitorRetention <= 0 {
		return fmt.Errorf("visitor retention must be positive, got %s", c.VisitorRetention)
	}
	return nil
}
