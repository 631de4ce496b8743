package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TOURS_AUTH_JWT_SECRET", testSecret)
	t.Setenv("TOURS_SERVER_PORT", "9090")
	t.Setenv("TOURS_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TOURS_DATABASE_URI", "mongodb://db.internal:27017")
	t.Setenv("TOURS_DATABASE_NAME", "tours_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Database.URI)
	assert.Equal(t, "tours_test", cfg.Database.Name)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOURS_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "tours", cfg.Database.Name)
	assert.Equal(t, 1440, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("short jwt secret", func(t *testing.T) {
		t.Setenv("TOURS_AUTH_JWT_SECRET", "too-short")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("TOURS_AUTH_JWT_SECRET", testSecret)
		t.Setenv("TOURS_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		assert.Error(t, err)
	})
}
