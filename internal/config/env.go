package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment overlays. Pointer fields
// distinguish "unset" from zero values.
type envConfig struct {
	ServerEndpointURL *string        `env:"CAREERCTL_SERVER_URL"`
	RequestTimeout    *time.Duration `env:"CAREERCTL_REQUEST_TIMEOUT"`
	DatabasePath      *string        `env:"CAREERCTL_DB_PATH"`
}

// parseEnv overlays cfg with values from the environment.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerEndpointURL != nil {
		cfg.ServerEndpointURL = *ec.ServerEndpointURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.DatabasePath != nil {
		cfg.DatabasePath = *ec.DatabasePath
	}
}
