// Package config loads console configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// State backends.
const (
	StateMemory = "memory"
	StateRedis  = "redis"
)

// Config holds all console configuration.
type Config struct {
	// Backend REST API
	APIBaseURL string        `env:"CONSOLE_API_BASE_URL,required" validate:"required,url"`
	APIToken   string        `env:"CONSOLE_API_TOKEN"`
	APITimeout time.Duration `env:"CONSOLE_API_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	APIRPS     float64       `env:"CONSOLE_API_RPS" envDefault:"0" validate:"gte=0"`
	APIBurst   int           `env:"CONSOLE_API_BURST" envDefault:"5" validate:"gte=0"`

	// HTTP surface
	Addr     string `env:"CONSOLE_ADDR" envDefault:":8080" validate:"required"`
	BasePath string `env:"CONSOLE_BASE_PATH" envDefault:"/admin" validate:"required,startswith=/"`

	// Page state
	StateBackend string        `env:"CONSOLE_STATE_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL     string        `env:"CONSOLE_REDIS_URL" validate:"omitempty,url"`
	StateTTL     time.Duration `env:"CONSOLE_STATE_TTL" envDefault:"12h" validate:"gt=0"`

	// Presentation
	Manifest         string        `env:"CONSOLE_MANIFEST"`
	DefaultLocale    string        `env:"CONSOLE_DEFAULT_LOCALE" envDefault:"en" validate:"required"`
	Currency         string        `env:"CONSOLE_CURRENCY" envDefault:"USD" validate:"len=3"`
	ChartCacheTTL    time.Duration `env:"CONSOLE_CHART_CACHE_TTL" envDefault:"1m"`
	ChartAssetsHost  string        `env:"CONSOLE_CHART_ASSETS_HOST" envDefault:"https://go-echarts.github.io/go-echarts-assets/assets/" validate:"omitempty,url"`
	ShutdownTimeout  time.Duration `env:"CONSOLE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SSEKeepAlive     time.Duration `env:"CONSOLE_SSE_KEEPALIVE" envDefault:"15s"`
	RequestBodyLimit int           `env:"CONSOLE_MAX_REQUEST_BODY_SIZE" envDefault:"1048576" validate:"gt=0"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

// UsesRedis reports whether page state lives in Redis.
func (c *Config) UsesRedis() bool {
	return c.StateBackend == StateRedis
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.UsesRedis() && c.RedisURL == "" {
		return errors.New("invalid config: CONSOLE_REDIS_URL is required for the redis state backend")
	}
	return nil
}

// NewLogger builds the slog logger described by LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLogLevel(c.LogLevel)}
	var h slog.Handler
	if c.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// ParseLogLevel converts a level name to slog.Level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
