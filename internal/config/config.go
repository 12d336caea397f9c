// Package config loads server configuration from environment and optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all server configuration.
type Config struct {
	// HTTP server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Auth
	JWTSecret string
	JWTIssuer string

	// Logging
	LogLevel    string
	Development bool
}

// Load reads configuration with precedence: config file < HORTITRACK_* env vars.
// A config file is optional; environment variables alone are enough for production.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("hortitrack")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/hortitrack")

	v.SetEnvPrefix("HORTITRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("port", "8080")
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 30*time.Second)
	v.SetDefault("idle_timeout", 60*time.Second)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("db_max_conns", 25)
	v.SetDefault("db_min_conns", 5)
	v.SetDefault("jwt_issuer", "hortitrack")
	v.SetDefault("log_level", "info")
	v.SetDefault("development", false)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		IdleTimeout:     v.GetDuration("idle_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		DatabaseURL:     v.GetString("database_url"),
		DBMaxConns:      v.GetInt32("db_max_conns"),
		DBMinConns:      v.GetInt32("db_min_conns"),
		JWTSecret:       v.GetString("jwt_secret"),
		JWTIssuer:       v.GetString("jwt_issuer"),
		LogLevel:        v.GetString("log_level"),
		Development:     v.GetBool("development"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("HORTITRACK_DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("HORTITRACK_JWT_SECRET is required")
	}

	return cfg, nil
}
