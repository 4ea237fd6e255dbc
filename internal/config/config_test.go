package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://fakestoreapi.com", cfg.APIBaseURL)
	assert.Equal(t, 30, cfg.APITimeoutSeconds)
	assert.True(t, cfg.PersistLocalMutations)
	assert.Equal(t, 8090, cfg.HTTPPort)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, []string{"mor_2314"}, cfg.AdminUsernames)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidAPITimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API timeout")
}

func TestLoad_CustomAdminList(t *testing.T) {
	t.Setenv("ADMIN_USERNAMES", "mor_2314,johnd")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"mor_2314", "johnd"}, cfg.AdminUsernames)
}

func TestLoad_DisableLocalMutations(t *testing.T) {
	t.Setenv("PERSIST_LOCAL_MUTATIONS", "false")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.PersistLocalMutations)
}

func TestLoad_CustomRedisAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.prod:6380")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "redis.prod:6380", cfg.RedisAddr)
}
