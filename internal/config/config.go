package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Billy"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		// File behind the API server's bills endpoint.
		File string `envconfig:"DATA_FILE" default:"data/bills.json"`
	}

	Persist struct {
		// Base URL of the API server, tried first by the cascade.
		// Empty disables the remote tier entirely.
		APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
		// SQLite key-value store used when the API is unreachable.
		LocalDB string `envconfig:"LOCAL_DB_PATH" default:"data/billy.db"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
