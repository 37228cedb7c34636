package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds runtime settings. Every field has an env fallback with a
// default, so the service starts with no config file at all.
type Config struct {
	Server struct {
		Host string `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
		Port int    `yaml:"port" env:"PORT" env-default:"8080"`
	} `yaml:"server"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"auctions.db"`
	} `yaml:"database"`

	Session struct {
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"session_token"`
		MaxAge     int    `yaml:"max_age_seconds" env:"SESSION_MAX_AGE" env-default:"86400"`
	} `yaml:"session"`
}

// Load reads configuration from CONFIG_PATH (YAML) when set, falling back to
// environment variables and defaults otherwise. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}
	return &cfg, nil
}

// Addr returns the host:port the HTTP server should bind
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
