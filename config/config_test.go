package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "gallery.db", cfg.Database.DSN)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, "./uploads", cfg.Upload.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GALLERY_DATABASE_DRIVER", "postgres")
	t.Setenv("GALLERY_DATABASE_DSN", "host=localhost user=gallery dbname=gallery")
	t.Setenv("GALLERY_AUTH_JWT_SECRET", "from-env")
	t.Setenv("GALLERY_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadRejectsBadDriver(t *testing.T) {
	t.Setenv("GALLERY_DATABASE_DRIVER", "oracle")
	_, err := Load()
	require.Error(t, err)
}
