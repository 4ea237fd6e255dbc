package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseURL  string `env:"TEST_CFG_BASE_URL" envDefault:"https://fakestoreapi.com"`
	LogLevel string `env:"TEST_CFG_LOG_LEVEL" envDefault:"info"`
	Local    bool   `env:"TEST_CFG_LOCAL" envDefault:"true"`
	Port     int    `env:"TEST_CFG_PORT" envDefault:"8080"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "https://fakestoreapi.com", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Local)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_BASE_URL", "http://localhost:9000")
	t.Setenv("TEST_CFG_LOG_LEVEL", "debug")
	t.Setenv("TEST_CFG_LOCAL", "false")
	t.Setenv("TEST_CFG_PORT", "9090")

	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Local)
	assert.Equal(t, 9090, cfg.Port)
}

type listConfig struct {
	Admins []string `env:"TEST_CFG_ADMINS" envDefault:"" envSeparator:","`
}

func TestLoad_CommaSeparatedList(t *testing.T) {
	t.Setenv("TEST_CFG_ADMINS", "mor_2314,johnd")

	var cfg listConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, []string{"mor_2314", "johnd"}, cfg.Admins)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
