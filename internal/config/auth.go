package config

import "fmt"

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// Secret is the HMAC secret used to verify bearer tokens.
	Secret string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Secret: GetEnv("AUTH_SECRET", ""),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("AUTH_SECRET must be set")
	}
	return nil
}
