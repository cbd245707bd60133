// Package cli provides common initialization for the fiscald and fiscal
// binaries: .env loading, logging, and configuration.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"fiscal/internal/config"
	"fiscal/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and
// installs the logger as the process default.
func SetupLogger(level, component string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: component,
	})
	log.SetDefault(logger)
	return logger
}

// Setup loads the environment file, configuration, and logger, in that
// order: the log level itself comes from configuration. Exits the process
// on validation failure.
func Setup(component string) (*config.Config, *log.Logger) {
	LoadEnvFile()
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel, component)
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg, logger
}
