package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env is not an error.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("no env file found", "path", path)
			continue
		}
		logger.Info("environment loaded from file", "path", path)
		break
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
