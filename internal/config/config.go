package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v10"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Config holds all environment backed configuration for the task API.
type Config struct {
	// HTTP Server
	Environment string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int           `env:"METRICS_PORT" envDefault:"9091"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// PostgreSQL
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Auth: HS256 access tokens issued on register/login.
	AuthSecret string        `env:"AUTH_SECRET,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"30m"`

	// Completion backend
	CompletionProvider string        `env:"COMPLETION_PROVIDER" envDefault:"openai"`
	CompletionTimeout  time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"120s"`
	MaxToolRounds      int           `env:"MAX_TOOL_ROUNDS" envDefault:"5"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
}

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Load parses the environment into a Config, validates it, and stores it as
// the global configuration.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	SetGlobal(cfg)
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CompletionProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported COMPLETION_PROVIDER %q", c.CompletionProvider)
	}
	if c.MaxToolRounds <= 0 {
		return fmt.Errorf("MAX_TOOL_ROUNDS must be positive, got %d", c.MaxToolRounds)
	}
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", c.CompletionTimeout)
	}
	return nil
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// GetGlobal returns the global configuration, or an empty Config if Load has
// not been called yet.
func GetGlobal() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalConfig == nil {
		return &Config{}
	}
	return globalConfig
}

// IsDev reports whether the service runs in a development environment.
func (c *Config) IsDev() bool {
	return c.Environment == "development" || c.Environment == "local"
}
