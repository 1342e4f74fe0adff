package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/cadence/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		constants.EnvPort, constants.EnvDBPort, constants.EnvDBSSLMode,
		constants.EnvRunTimeout, constants.EnvSchedulerEnabled,
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultRunTimeout, cfg.RunTimeout)
	assert.True(t, cfg.SchedulerEnabled)
	assert.False(t, cfg.DB.SSLEnabled)
	assert.Zero(t, cfg.DB.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(constants.EnvPort, "9090")
	t.Setenv(constants.EnvDBPort, "6543")
	t.Setenv(constants.EnvDBSSLMode, "require")
	t.Setenv(constants.EnvRunTimeout, "30s")
	t.Setenv(constants.EnvSchedulerEnabled, "false")
	t.Setenv(constants.EnvDBHost, "db.internal")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.SSLEnabled)
	assert.Equal(t, 30*time.Second, cfg.RunTimeout)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Equal(t, "db.internal", cfg.DB.Host)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "db port", key: constants.EnvDBPort, value: "abc"},
		{name: "ssl mode", key: constants.EnvDBSSLMode, value: "maybe"},
		{name: "timeout", key: constants.EnvRunTimeout, value: "soon"},
		{name: "negative timeout", key: constants.EnvRunTimeout, value: "-1s"},
		{name: "scheduler flag", key: constants.EnvSchedulerEnabled, value: "sometimes"},
		{name: "port", key: constants.EnvPort, value: "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
