package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/config"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_MODE", "PORT", "API_PREFIX", "LOG_LEVEL", "CORS_ORIGINS",
		"STORAGE_BACKEND", "MONGO_URL", "DB_NAME", "GCP_PROJECT", "GCP_LOCATION",
		"LLM_PROVIDER", "LLM_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY",
		"SESSION_EXCHANGE_URL", "COOKIE_SECURE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ModeLocal, cfg.Mode)
	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, config.StorageMemory, cfg.StorageBackend)
	assert.Equal(t, config.LLMMock, cfg.LLMProvider)
	assert.True(t, cfg.CookieSecure)
	assert.NotEmpty(t, cfg.SessionExchangeURL)
}

func TestLoad_MongoNeedsURLAndDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "mongo")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URL")

	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "startupos")
	_, err = config.Load()
	assert.NoError(t, err)
}

func TestLoad_ProviderDefaultsAndModels(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_MODE", "production")

	_, err := config.Load()
	require.Error(t, err, "production defaults to openai and needs a key")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.LLMOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)

	t.Setenv("LLM_PROVIDER", "vertex")
	t.Setenv("GCP_PROJECT", "proj")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
}

func TestValidate_UnknownBackends(t *testing.T) {
	cfg := &config.Config{Port: "8001", StorageBackend: "redis", LLMProvider: "claude", SessionExchangeURL: "x"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestLoad_CORSList(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.app, https://b.app ,")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.CORSOrigins)
	assert.False(t, cfg.CookieSecure)
}
