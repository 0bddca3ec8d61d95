package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"possync_api/config/values"
)

type SquareConfig struct {
	AccessToken  string              `yaml:"access_token"`
	ApiURL       string              `yaml:"api_url"`
	ApiVersion   string              `yaml:"api_version"`
	SquareValues values.SquareValues `yaml:"default_values"`
}

// TenantConfig is the identity triple every synced row is scoped by.
type TenantConfig struct {
	TenantID  string `yaml:"tenant_id"`
	Provider  string `yaml:"provider"`
	AccountID string `yaml:"provider_account_id"`
}

type AppConfig struct {
	Square SquareConfig `yaml:"square"`
	Tenant TenantConfig `yaml:"tenant"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	if config.Square.ApiURL == "" {
		config.Square.ApiURL = "https://connect.squareup.com"
	}
	if config.Square.ApiVersion == "" {
		config.Square.ApiVersion = "2024-10-17"
	}
	if config.Tenant.Provider == "" {
		config.Tenant.Provider = "square"
	}
	if config.Tenant.TenantID == "" {
		return nil, fmt.Errorf("tenant.tenant_id is required")
	}
	config.Square.SquareValues.ApplyDefaults()

	return config, nil
}
