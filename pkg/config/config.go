package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the service reads from the environment.
type Config struct {
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsJSON string `env:"FIREBASE_CREDENTIALS_JSON"`
	Port                    string `env:"PORT" envDefault:"8080"`
	CORSHosts               string `env:"CORS_HOSTS"`
	ResendKey               string `env:"RESEND_KEY"`
	PaymentsAPIURL          string `env:"PAYMENTS_API_URL"`
	PaymentsKey             string `env:"PAYMENTS_KEY"`
	HostURL                 string `env:"HOST_URL"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
