package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todo")
	t.Setenv("AUTH_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "openai", cfg.CompletionProvider)
	assert.Equal(t, 120*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 5, cfg.MaxToolRounds)
	assert.True(t, cfg.IsDev())
	assert.Same(t, cfg, GetGlobal())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMPLETION_PROVIDER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("COMPLETION_PROVIDER", "gemini")
	t.Setenv("MAX_TOOL_ROUNDS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "gemini", cfg.CompletionProvider)
	assert.Equal(t, 3, cfg.MaxToolRounds)
}
