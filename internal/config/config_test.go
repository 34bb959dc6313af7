package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("TEST_KEY", "value")
		assert.Equal(t, "value", GetEnv("TEST_KEY", "default"))
	})

	t.Run("returns default when unset", func(t *testing.T) {
		assert.Equal(t, "default", GetEnv("TEST_UNSET_KEY", "default"))
	})

	t.Run("empty value falls back to default", func(t *testing.T) {
		t.Setenv("TEST_KEY", "")
		assert.Equal(t, "default", GetEnv("TEST_KEY", "default"))
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("parses duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "30s")
		assert.Equal(t, 30*time.Second, GetEnvDuration("TEST_DURATION", time.Minute))
	})

	t.Run("invalid value falls back to default", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "soon")
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_DURATION", time.Minute))
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 15 * time.Second,
		},
		Logger:  LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
		Auth:    AuthConfig{Secret: "s3cret"},
		GinMode: "release",
	}

	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing auth secret", func(t *testing.T) {
		cfg := valid
		cfg.Auth.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := valid
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad gin mode", func(t *testing.T) {
		cfg := valid
		cfg.GinMode = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero shutdown timeout", func(t *testing.T) {
		cfg := valid
		cfg.Server.ShutdownTimeout = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestServerConfig_GetAddress(t *testing.T) {
	t.Run("port only", func(t *testing.T) {
		cfg := ServerConfig{Port: ":8080"}
		assert.Equal(t, ":8080", cfg.GetAddress())
	})

	t.Run("host and port", func(t *testing.T) {
		cfg := ServerConfig{Host: "127.0.0.1", Port: ":8080"}
		assert.Equal(t, "127.0.0.1:8080", cfg.GetAddress())
	})
}

func TestLoggerConfig_IsProduction(t *testing.T) {
	assert.True(t, LoggerConfig{Level: "info", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "debug", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "info", Format: "console"}.IsProduction())
}
