package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("EDIT_SESSION_TTL_MINUTES", "")
	t.Setenv("ORCHESTRATOR_URL", "")
	t.Setenv("AUTH_ISSUER", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("ORCHESTRATOR_QUEUE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, time.Hour, cfg.EditSession.TTL())
	assert.Equal(t, 8, cfg.EditSession.CommitConcurrency)
	assert.Empty(t, cfg.Orchestrator.TimeOffURL())
	assert.Equal(t, "staffing-service", cfg.Auth.Issuer)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 256, cfg.Orchestrator.QueueSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ORCHESTRATOR_URL", "http://orchestrator:8000")
	t.Setenv("ORCHESTRATOR_TIME_OFF_PATH", "/hooks/pto")
	t.Setenv("EDIT_COMMIT_CONCURRENCY", "3")
	t.Setenv("SKILL_CACHE_TTL_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, "http://orchestrator:8000/hooks/pto", cfg.Orchestrator.TimeOffURL())
	assert.Equal(t, 3, cfg.EditSession.CommitConcurrency)
	assert.Zero(t, cfg.Redis.SkillCacheTTL())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestAuthConfig_AccessTokenTTL(t *testing.T) {
	assert.Equal(t, time.Hour, AuthConfig{}.AccessTokenTTL())
	assert.Equal(t, 15*time.Minute, AuthConfig{AccessTokenTTLMinutes: 15}.AccessTokenTTL())
}
