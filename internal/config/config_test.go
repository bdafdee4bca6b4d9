package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Run("defaults apply on a minimal environment", func(t *testing.T) {
		t.Setenv("BASEURL", "https://api.github.com/repos/acme/demo")
		t.Setenv("APIKEY", "secret-token")

		cfg, err := NewLoader().Load()

		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/repos/acme/demo", cfg.BaseURL)
		assert.Equal(t, "secret-token", cfg.Token)
		assert.Equal(t, 10, cfg.BatchSize)
		assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "repoview", cfg.UserAgent)
	})

	t.Run("tuning variables override the defaults", func(t *testing.T) {
		t.Setenv("BASEURL", "https://api.github.com/repos/acme/demo")
		t.Setenv("APIKEY", "secret-token")
		t.Setenv("BATCH_SIZE", "5")
		t.Setenv("HTTP_TIMEOUT", "3s")
		t.Setenv("USER_AGENT", "acme-reporter")

		cfg, err := NewLoader().Load()

		require.NoError(t, err)
		assert.Equal(t, 5, cfg.BatchSize)
		assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "acme-reporter", cfg.UserAgent)
	})

	t.Run("missing token fails validation", func(t *testing.T) {
		t.Setenv("BASEURL", "https://api.github.com/repos/acme/demo")
		t.Setenv("APIKEY", "")

		_, err := NewLoader().Load()

		assert.ErrorContains(t, err, "config validation")
	})

	t.Run("malformed base URL fails validation", func(t *testing.T) {
		t.Setenv("BASEURL", "not a url")
		t.Setenv("APIKEY", "secret-token")

		_, err := NewLoader().Load()

		assert.ErrorContains(t, err, "config validation")
	})

	t.Run("non-positive batch size is rejected", func(t *testing.T) {
		t.Setenv("BASEURL", "https://api.github.com/repos/acme/demo")
		t.Setenv("APIKEY", "secret-token")
		t.Setenv("BATCH_SIZE", "0")

		_, err := NewLoader().Load()

		assert.ErrorContains(t, err, "config validation")
	})
}
