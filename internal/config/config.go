package config

import (
	"os"
	"strconv"

	"demandlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	API       APIConfig
	Profiling ProfilingConfig
}

// DatabaseConfig holds database connection settings. The database is
// optional: without DATABASE_URL the dashboard runs with in-memory
// dataset storage only.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds dashboard web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// APIConfig holds the machine-facing validation API settings
type APIConfig struct {
	Port    string
	Enabled bool
}

// ProfilingConfig selects the readiness policy preset and upload limits
type ProfilingConfig struct {
	ReadinessPolicy string // "permissive" or "strict"
	MaxUploadBytes  int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		API: APIConfig{
			Port:    getEnvOrDefault("API_PORT", "8090"),
			Enabled: getEnvBoolOrDefault("API_ENABLED", true),
		},
		Profiling: ProfilingConfig{
			ReadinessPolicy: getEnvOrDefault("READINESS_POLICY", "permissive"),
			MaxUploadBytes:  getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 25<<20),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Profiling.ReadinessPolicy {
	case "permissive", "strict":
	default:
		return errors.ConfigInvalid("READINESS_POLICY must be 'permissive' or 'strict'")
	}
	if config.Profiling.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
