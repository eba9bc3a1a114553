package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Equal(t, time.Second, cfg.Chat.MinDelay)
	assert.Equal(t, time.Second, cfg.Chat.MaxJitter)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLASSLENS_SEED", "7")
	t.Setenv("CLASSLENS_LOG_LEVEL", "DEBUG")
	t.Setenv("CLASSLENS_CHAT_MIN_DELAY", "250ms")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.MinDelay)
}

func TestInvalidLevel(t *testing.T) {
	v := New()
	v.Set("log.level", "loud")
	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNegativeSeedRejected(t *testing.T) {
	v := New()
	v.Set("seed", -1)
	_, err := Load(v)
	require.Error(t, err)
}

func TestDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLASSLENS_CATALOG_PATH=/tmp/override.yaml\n"), 0o600))
	t.Setenv("CLASSLENS_CATALOG_PATH", "")
	require.NoError(t, os.Unsetenv("CLASSLENS_CATALOG_PATH"))
	require.NoError(t, LoadDotEnv(path))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.yaml", cfg.Catalog.Path)
}

func TestResolveSeed(t *testing.T) {
	now := time.Unix(0, 12345)
	assert.Equal(t, uint64(12345), (&Config{}).ResolveSeed(now))
	assert.Equal(t, uint64(9), (&Config{Seed: 9}).ResolveSeed(now))
}
