package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skillsmatch/go-skillsmatch/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8001/api", cfg.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Timeout.Std())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "base_url = \"https://hr.example.com/api\"\ntimeout = \"30s\"\nlog_level = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://hr.example.com/api", cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Timeout.Std())
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = \"https://file.example.com/api\"\n"), 0o600))

	t.Setenv("SKILLSMATCH_BASE_URL", "https://env.example.com/api")
	t.Setenv("SKILLSMATCH_TIMEOUT", "5s")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com/api", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout.Std())
}

func TestMissingFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8001/api", cfg.BaseURL)
}
