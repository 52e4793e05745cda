package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration, sourced from environment
// variables (optionally seeded from a .env file by the entrypoint).
type Config struct {
	Port string

	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
}

type DatabaseConfig struct {
	Driver string // "postgres", "mysql" or "sqlite"
	DSN    string
}

type JWTConfig struct {
	Secret            string
	ExpirationSeconds int
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment and applies defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("JWT_EXPIRATION_SECONDS", 3600)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	cfg := &Config{
		Port: v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DB_DSN"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			ExpirationSeconds: v.GetInt("JWT_EXPIRATION_SECONDS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins(v),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DB_DSN environment variable is not set")
	}

	if cfg.JWT.ExpirationSeconds < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_SECONDS must be positive")
	}

	return cfg, nil
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpirationSeconds) * time.Second
}

// allowedOrigins combines the development defaults with CLIENT_URL and
// the comma-separated ALLOWED_ORIGINS list.
func allowedOrigins(v *viper.Viper) []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if clientURL := v.GetString("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
