package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RECRAFT_API_KEY", "test-key")
	t.Setenv("RECRAFT_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("RECRAFT_API_KEY", "")
	t.Setenv("RECRAFT_API_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECRAFT_API_KEY is required")
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing scheme", "external.api.recraft.ai"},
		{"scheme only", "https://"},
		{"garbage", "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RECRAFT_API_KEY", "test-key")
			t.Setenv("RECRAFT_API_URL", tt.url)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "RECRAFT_API_URL is not a valid URL")
		})
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("RECRAFT_API_KEY", "test-key")
	t.Setenv("RECRAFT_API_URL", "http://localhost:8080/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}
