// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DefaultAPIURL is the hosted auth API the client talks to
const DefaultAPIURL = "https://klikkcs-2.onrender.com"

// Session backends for the terminal client
const (
	BackendFile   = "file"
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
)

type Config struct {
	APIURL      string        `env:"KLIKK_API_URL" envDefault:"https://klikkcs-2.onrender.com" validate:"required,url"`
	HTTPTimeout time.Duration `env:"KLIKK_HTTP_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	WebAddr string `env:"KLIKK_WEB_ADDR" envDefault:":8000" validate:"required"`

	DevAPIAddr      string `env:"KLIKK_DEVAPI_ADDR" envDefault:":8001" validate:"required"`
	DevAPISecret    string `env:"KLIKK_DEVAPI_SECRET" envDefault:"klikk-development-secret-do-not-deploy" validate:"required,min=32"`
	DevAPIDBPath    string `env:"KLIKK_DEVAPI_DB"`
	DevAPIRateLimit int    `env:"KLIKK_DEVAPI_RATE_LIMIT" envDefault:"60" validate:"gte=0"`

	SessionBackend string `env:"KLIKK_SESSION_BACKEND" envDefault:"file" validate:"oneof=file duckdb memory"`
	SessionPath    string `env:"KLIKK_SESSION_PATH" envDefault:"./data/session.msgpack" validate:"required_unless=SessionBackend memory"`

	LogLevel string `env:"KLIKK_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile  string `env:"KLIKK_LOG_FILE" envDefault:"./data/klikk.log" validate:"required"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, serr.Wrap(err, "failed to read .env file")
		}
		logger.Debug("No .env file found, relying on environment variables")
	}
	return parse(env.Options{})
}

// FromMap builds a Config from the given variables only; for tests and
// embedding.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, serr.Wrap(err, "failed to parse environment")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, serr.Wrap(err, "invalid config")
	}

	return cfg, nil
}
