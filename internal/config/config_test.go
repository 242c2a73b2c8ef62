package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, "https://gateway.demandvibes.com", cfg.Gateway.URL)
	assert.Equal(t, 15, cfg.Gateway.TimeoutSeconds)
	assert.Equal(t, "taskdesk-attachments", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.UseSSL)
}

func TestNewConfig_Env(t *testing.T) {
	t.Setenv("LOG_LEVEL", "-4")
	t.Setenv("GATEWAY_URL", "http://localhost:8000")
	t.Setenv("GATEWAY_ANON_KEY", "anon-key")
	t.Setenv("GATEWAY_TIMEOUT", "5")
	t.Setenv("MINIO_ENDPOINT", "minio.internal:9000")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "http://localhost:8000", cfg.Gateway.URL)
	assert.Equal(t, "anon-key", cfg.Gateway.AnonKey)
	assert.Equal(t, 5, cfg.Gateway.TimeoutSeconds)
	assert.Equal(t, "minio.internal:9000", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
}
