package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	t.Setenv("LOTTOBTC_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := GetConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Handler.ServerAddr)
	require.Equal(t, "failure", cfg.Handler.FailClass)
	require.Equal(t, "https://api.coingecko.com/api", cfg.Service.GeckoAddr)
	require.Equal(t, 30*time.Second, cfg.Service.GeckoTimeout)
	require.Equal(t, "Local", cfg.Service.TimeZone)
	require.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestGetConfigEnv(t *testing.T) {
	t.Setenv("LOTTOBTC_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("LOTTOBTC_ADDR", ":9090")
	t.Setenv("LOTTOBTC_FAIL_CLASS", "fail")
	t.Setenv("LOTTOBTC_GECKO_TIMEOUT", "5s")

	cfg, err := GetConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Handler.ServerAddr)
	require.Equal(t, "fail", cfg.Handler.FailClass)
	require.Equal(t, 5*time.Second, cfg.Service.GeckoTimeout)
}

func TestGetConfigEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOTTOBTC_TZ=UTC\n"), 0o600))
	t.Setenv("LOTTOBTC_ENV_FILE", envFile)
	// godotenv.Load выставляет переменную через os.Setenv, вернем как было
	t.Setenv("LOTTOBTC_TZ", "")
	os.Unsetenv("LOTTOBTC_TZ")

	cfg, err := GetConfig()
	require.NoError(t, err)
	require.Equal(t, "UTC", cfg.Service.TimeZone)

	loc, err := cfg.Service.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}
