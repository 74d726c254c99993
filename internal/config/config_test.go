package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "127.0.0.1:45454", cfg.NodeAddress)
		assert.Equal(t, 10*time.Minute, cfg.TokenTTL)
		assert.Equal(t, 2, cfg.KeyRetentionWindow)
		assert.Equal(t, time.Duration(0), cfg.KeyRotationInterval)
		assert.Empty(t, cfg.MasterKeySeed)
		assert.True(t, cfg.MetricsEnabled)
		assert.Equal(t, "containertoken", cfg.MetricsNamespace)
	})

	t.Run("Success_EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("TOKEN_TTL_SECONDS", "60")
		t.Setenv("KEY_ROTATION_INTERVAL_SECONDS", "3600")
		t.Setenv("NODE_ADDRESS", "nm1:1234")

		cfg := Load()

		assert.Equal(t, 9090, cfg.ServerPort)
		assert.Equal(t, time.Minute, cfg.TokenTTL)
		assert.Equal(t, time.Hour, cfg.KeyRotationInterval)
		assert.Equal(t, "nm1:1234", cfg.NodeAddress)
	})
}

func TestGetGinMode(t *testing.T) {
	t.Run("Success_DebugLevel", func(t *testing.T) {
		cfg := &Config{LogLevel: "debug"}
		assert.Equal(t, "debug", cfg.GetGinMode())
	})

	t.Run("Success_NonDebugLevels", func(t *testing.T) {
		for _, level := range []string{"info", "warn", "error", "unknown"} {
			cfg := &Config{LogLevel: level}
			assert.Equal(t, "release", cfg.GetGinMode())
		}
	})
}
