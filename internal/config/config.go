package config

import (
	"os"
	"strconv"

	"apextelemetry/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Results   ResultsConfig
	Mail      MailConfig
	Telemetry TelemetryConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port    string
	GinMode string
}

// ResultsConfig holds settings for the upstream racing-results feed.
type ResultsConfig struct {
	BaseURL string
}

// MailConfig holds SMTP settings for notification email. Notifications are
// disabled when Username or Password is empty.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// TelemetryConfig holds generation settings.
type TelemetryConfig struct {
	TotalLaps int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Results: ResultsConfig{
			BaseURL: getEnvOrDefault("ERGAST_BASE_URL", "https://ergast.com/api/f1"),
		},
		Mail: MailConfig{
			Host:     getEnvOrDefault("MAIL_HOST", "smtp.gmail.com"),
			Port:     getEnvIntOrDefault("MAIL_PORT", 587),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     getEnvOrDefault("MAIL_FROM", "noreply@apextelemetry.local"),
		},
		Telemetry: TelemetryConfig{
			TotalLaps: getEnvIntOrDefault("TOTAL_LAPS", 50),
		},
	}

	if cfg.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	if cfg.Telemetry.TotalLaps <= 0 {
		return nil, errors.ConfigInvalid("TOTAL_LAPS must be positive")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
