package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	require.Equal(t, 8, cfg.Auth.BcryptCost)
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "x")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsBcryptCostOutOfRange(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_BCRYPT_COST", "40")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_BCRYPT_COST")
}
