package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// EnvConfig holds everything read from the process environment.
type EnvConfig struct {
	Postgres PostgresConfig
	Ops      OpsConfig
}

// OpsConfig holds settings of the operational HTTP endpoint
// (health checks and metrics scraping).
type OpsConfig struct {
	Host string `envconfig:"OPS_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"OPS_PORT" default:"9091"`
}

func (o *OpsConfig) Address() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// LoadEnv reads configuration from environment variables.
func LoadEnv() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}
	return &cfg, nil
}
