package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_MAX_CONNS",
	"PORT", "APP_ENV", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
	"JWT_SECRET", "JWT_EXPIRATION", "SEED_ADMIN_EMAIL", "SEED_ADMIN_PASSWORD",
}

// clearEnv unsets every key Load reads; t.Setenv restores the previous values on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Equal(t, "postgres://postgres:@localhost:5432/leave_management?sslmode=disable", cfg.DatabaseURL())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.CORSAllowedOrigins)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "from-process")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=from_file\nDB_HOST=from-file\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.Database.Name)
	assert.Equal(t, "from-process", cfg.Database.Host)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric port", map[string]string{"PORT": "abc"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"bad expiration", map[string]string{"JWT_EXPIRATION": "tomorrow"}},
		{"negative expiration", map[string]string{"JWT_EXPIRATION": "-1h"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"zero pool size", map[string]string{"DB_MAX_CONNS": "0"}},
		{"seed email without password", map[string]string{"SEED_ADMIN_EMAIL": "admin@company.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
