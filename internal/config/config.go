// Package config loads the process configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the fetch pipeline needs. It is read once at
// startup and passed down explicitly; nothing below cmd touches the
// environment.
type Config struct {
	// Target repository endpoint, e.g. https://api.github.com/repos/owner/repo
	BaseURL string `envconfig:"BASEURL" validate:"required,url"`
	// Bearer token sent with every request.
	Token string `envconfig:"APIKEY" validate:"required"`

	// Tuning
	BatchSize   int           `split_words:"true" default:"10" validate:"gt=0"`
	HTTPTimeout time.Duration `split_words:"true" default:"10s" validate:"gt=0"`
	UserAgent   string        `split_words:"true" default:"repoview"`
}

// Loader reads and validates a Config.
type Loader struct {
	Validate *validator.Validate
}

func NewLoader() *Loader {
	return &Loader{Validate: validator.New()}
}

// Load reads the .env file if present, then the environment, then validates.
func (l *Loader) Load() (Config, error) {
	var cfg Config

	// Best effort: a missing .env just means the variables come from the
	// real environment.
	_ = godotenv.Load()

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("env load: %w", err)
	}

	if err := l.Validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}
