package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
  webhook_auth: true
llm:
  endpoint: http://localhost:11434/v1
  timeout: 10s
  backoff_base: 500ms
resolver:
  approx_mode: substring
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.True(t, cfg.Server.WebhookAuth)
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.Endpoint)
		assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 500*time.Millisecond, cfg.LLM.BackoffBase)
		assert.Equal(t, ApproxModeSubstring, cfg.Resolver.ApproxMode)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8080\"\n"))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.Endpoint)
		assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
		assert.Equal(t, 500, cfg.LLM.MaxTokens)
		assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, time.Second, cfg.LLM.BackoffBase)
		assert.InDelta(t, 8.5, cfg.LLM.PrimaryScore, 0.0001)
		assert.InDelta(t, 7.0, cfg.LLM.FallbackScore, 0.0001)
		assert.Equal(t, ApproxModeKeywords, cfg.Resolver.ApproxMode)
		assert.InDelta(t, 0.5, cfg.Resolver.MinScore, 0.0001)
		assert.Equal(t, 4, cfg.Resolver.MinKeywordSize)
		assert.Equal(t, 30*time.Second, cfg.Settings.CacheTTL)
		assert.Equal(t, time.Hour, cfg.Maintenance.Interval)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("LUNA_TEST_TOKEN", "secret-token")
		cfg, err := Load(writeConfig(t, "server:\n  api_token: ${LUNA_TEST_TOKEN}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret-token", cfg.Server.APIToken)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid yaml content\n  with bad indentation\n    and no structure\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid approx mode", func(t *testing.T) {
		_, err := Load(writeConfig(t, "resolver:\n  approx_mode: fuzzy\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolver.approx_mode")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "llm:\n  temperature: 3.5\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.temperature")
	})

	t.Run("fallback score above primary", func(t *testing.T) {
		_, err := Load(writeConfig(t, "llm:\n  primary_score: 5\n  fallback_score: 6\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.fallback_score")
	})
}

func TestConfig_Getters(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	cfg.Server.Listen = ":9090"

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 30*time.Second, timeout)
	assert.Equal(t, cfg.LLM, cfg.GetLLMConfig())
	assert.Equal(t, cfg.Resolver, cfg.GetResolverConfig())
}
