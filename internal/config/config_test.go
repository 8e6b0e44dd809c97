package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8000, cfg.AppPort)
		assert.Equal(t, ":memory:", cfg.DatabasePath)
		assert.Equal(t, "sqlite", cfg.SessionStore)
		assert.Equal(t, 30*time.Second, cfg.SearchTimeout)
		assert.Equal(t, 5, cfg.NewsResults)
		assert.Equal(t, "gpt-4o", cfg.DefaultModel)
		assert.Equal(t, 800, cfg.MaxTokens)
		assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
		assert.Equal(t, "https://api.clarifai.com/v2/ext/openai/v1", cfg.ClarifaiAPIBase)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("CLARIFAI_PAT", "pat-123")
		t.Setenv("SEARCH_TIMEOUT", "5s")
		t.Setenv("DEFAULT_MODEL", "gpt-4o-mini")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "pat-123", cfg.ClarifaiPAT)
		assert.Equal(t, 5*time.Second, cfg.SearchTimeout)
		assert.Equal(t, "gpt-4o-mini", cfg.DefaultModel)
	})
}

func TestConfig_CredentialChecks(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		clarifai bool
		serper   bool
	}{
		{"Empty", Config{}, false, false},
		{"Placeholders", Config{ClarifaiPAT: ClarifaiPATPlaceholder, SerperAPIKey: SerperAPIKeyPlaceholder}, false, false},
		{"Whitespace", Config{ClarifaiPAT: "   ", SerperAPIKey: "\t"}, false, false},
		{"Set", Config{ClarifaiPAT: "real-pat", SerperAPIKey: "real-key"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.clarifai, tt.cfg.ClarifaiConfigured())
			assert.Equal(t, tt.serper, tt.cfg.SerperConfigured())
		})
	}
}
