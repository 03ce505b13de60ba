// Package config loads the server configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mmynk/eventsdesk/internal/models"
	"github.com/mmynk/eventsdesk/internal/storage"
	"github.com/mmynk/eventsdesk/pkg/logging"
)

// Config is the full server configuration.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"./data/events.db"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Cost CostConfig
	Auth AuthConfig
}

// CostConfig drives the scheduled cost recompute.
type CostConfig struct {
	Interval           time.Duration `env:"COST_RECOMPUTE_INTERVAL" envDefault:"60s"`
	OrganizerSurname   string        `env:"COST_ORGANIZER_SURNAME" envDefault:"Tounsi"`
	OrganizerGivenName string        `env:"COST_ORGANIZER_GIVEN_NAME" envDefault:"Ahmed"`
	OrganizerRole      string        `env:"COST_ORGANIZER_ROLE" envDefault:"ORGANIZER"`
}

// Filter returns the participant filter selecting events to recompute.
func (c CostConfig) Filter() storage.ParticipantFilter {
	return storage.ParticipantFilter{
		Surname:   c.OrganizerSurname,
		GivenName: c.OrganizerGivenName,
		Role:      models.Role(c.OrganizerRole),
	}
}

// AuthConfig configures operator authentication. An empty JWTSecret
// disables authentication entirely.
type AuthConfig struct {
	JWTSecret            string        `env:"JWT_SECRET"`
	TokenDuration        time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`
	OperatorUsername     string        `env:"OPERATOR_USERNAME" envDefault:"admin"`
	OperatorPasswordHash string        `env:"OPERATOR_PASSWORD_HASH"`
}

// Enabled reports whether RPCs require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.LogFormat))
	}
	if c.Cost.Interval <= 0 {
		errs = append(errs, fmt.Errorf("COST_RECOMPUTE_INTERVAL must be positive, got %s", c.Cost.Interval))
	}
	if c.Auth.Enabled() {
		if c.Auth.OperatorPasswordHash == "" {
			errs = append(errs, errors.New("OPERATOR_PASSWORD_HASH is required when JWT_SECRET is set"))
		}
		if c.Auth.TokenDuration <= 0 {
			errs = append(errs, fmt.Errorf("TOKEN_DURATION must be positive, got %s", c.Auth.TokenDuration))
		}
	}
	return errors.Join(errs...)
}
