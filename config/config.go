// Package config loads desk settings from the environment.
//
// Values come from, in order of precedence: process environment, a .env
// file in the working directory, then the defaults below.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/youstel/registration-desk/backend"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	DatabasePath   string        `mapstructure:"DATABASE_PATH"`
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	OutboxEnabled  bool          `mapstructure:"OUTBOX_ENABLED"`
	OutboxInterval time.Duration `mapstructure:"OUTBOX_INTERVAL"`
	MaxAttempts    int           `mapstructure:"MAX_ATTEMPTS"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
}

var keys = []string{
	"PORT", "DATABASE_PATH", "API_BASE_URL", "BACKEND_TIMEOUT", "CORS_ORIGINS",
	"OUTBOX_ENABLED", "OUTBOX_INTERVAL", "MAX_ATTEMPTS", "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "desk.db")
	v.SetDefault("API_BASE_URL", backend.DefaultBaseURL)
	v.SetDefault("BACKEND_TIMEOUT", backend.DefaultTimeout)
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("OUTBOX_ENABLED", true)
	v.SetDefault("OUTBOX_INTERVAL", time.Minute)
	v.SetDefault("MAX_ATTEMPTS", 5)
	v.SetDefault("LOG_LEVEL", "INFO")
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.APIBaseURL = backend.NormalizeBaseURL(cfg.APIBaseURL)
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
