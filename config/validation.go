package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration carries everything the
// application cannot run without.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" {
		errors = append(errors, "database host and port are required")
	}
	if cfg.DBUser == "" {
		errors = append(errors, "database user is required")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "database password is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is required")
	}
	if cfg.RedisHost == "" || cfg.RedisPort == "" {
		if cfg.RedisURL == "" {
			errors = append(errors, "redis host/port or redis URL is required")
		}
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
