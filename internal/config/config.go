package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel int     `env:"LOG_LEVEL" envDefault:"0"`
	Gateway  Gateway `envPrefix:"GATEWAY_"`
	Storage  Storage `envPrefix:"MINIO_"`
}

// Gateway contains connection parameters for the hosted auth/data
// service.
type Gateway struct {
	URL     string `env:"URL" envDefault:"https://gateway.demandvibes.com"`
	AnonKey string `env:"ANON_KEY"`
	// TimeoutSeconds bounds every gateway round-trip.
	TimeoutSeconds int `env:"TIMEOUT" envDefault:"15"`
	// AuthRPS rate-limits calls against the auth endpoints.
	AuthRPS float64 `env:"AUTH_RPS" envDefault:"2"`
}

// Storage contains object storage parameters for task attachments.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"taskdesk-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"taskdesk-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"taskdesk-attachments"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
