package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/termle/internal/game"
)

// Config holds all application configuration
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`
	Scoring     string `env:"WORDLE_SCORING" envDefault:"count"`
	DailySalt   string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	// NO_COLOR follows no-color.org: any non-empty value disables color.
	NoColor string `env:"NO_COLOR"`

	Server ServerConfig
}

// ServerConfig holds settings for serve mode
type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"5175"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL     time.Duration `env:"ROUND_TOKEN_TTL" envDefault:"24h"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads a .env file if present, then the environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()
	return Parse()
}

// Parse reads configuration from environment variables only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := game.ScorerByName(cfg.Scoring); err != nil {
		return nil, fmt.Errorf("WORDLE_SCORING: %w", err)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	if cfg.Server.TokenTTL <= 0 {
		return nil, fmt.Errorf("ROUND_TOKEN_TTL must be positive")
	}

	return &cfg, nil
}

// Colorless reports whether NO_COLOR is set
func (c *Config) Colorless() bool {
	return c.NoColor != ""
}

// Addr returns the listen address for serve mode
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
