package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		require.Equal(t, "http://localhost:5000", cfg.BackendURL)
		require.Equal(t, 30*time.Second, cfg.BackendTimeout)
		require.Equal(t, 3, cfg.DefaultResults)
		require.Equal(t, 20, cfg.MaxResults)
		require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
		require.False(t, cfg.IsDevelopment())
	})

	t.Run("parses overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("BACKEND_URL", "http://search.internal:8080/")
		t.Setenv("BACKEND_TIMEOUT", "5s")
		t.Setenv("DEFAULT_RESULTS", "5")
		t.Setenv("CORS_ORIGINS", `["https://curaan.app"]`)

		cfg, err := Load()
		require.NoError(t, err)

		require.True(t, cfg.IsDevelopment())
		require.Equal(t, "http://search.internal:8080", cfg.BackendURL, "trailing slash is trimmed")
		require.Equal(t, 5*time.Second, cfg.BackendTimeout)
		require.Equal(t, 5, cfg.DefaultResults)
		require.Equal(t, []string{"https://curaan.app"}, cfg.CORSOrigins)
	})

	t.Run("clamps default results to the maximum", func(t *testing.T) {
		t.Setenv("DEFAULT_RESULTS", "50")
		t.Setenv("MAX_RESULTS", "10")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 10, cfg.DefaultResults)
	})

	t.Run("rejects relative backend url", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "localhost:5000")

		_, err := Load()
		require.Error(t, err)
	})
}
