package bootstrap

import (
	"flag"
	"fmt"

	"github.com/jonesrussell/gogrants/internal/config"
	"github.com/jonesrussell/gogrants/internal/logger"
)

// LoadConfig loads and validates configuration. The -config flag selects
// the YAML file; environment variables override its values.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "gogrants"),
		logger.String("version", version),
	), nil
}
