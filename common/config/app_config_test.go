package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "application.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "taiscore", c.AppName)
	assert.Equal(t, "info", c.Log.Level)
	assert.True(t, c.Cache.Enabled)
	assert.Equal(t, 4, c.Batch.Workers)
	assert.Same(t, c, Get())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
appName: scorer-test
log:
  level: debug
cache:
  enabled: true
  maxCost: 128
  ttl: 30s
batch:
  workers: 0
aliases:
  chun: 中
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "scorer-test", c.AppName)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, int64(128), c.Cache.MaxCost)
	assert.Equal(t, 30*time.Second, c.Cache.TTL)
	assert.Equal(t, 1, c.Batch.Workers, "workers is clamped to 1")
	assert.Equal(t, "中", c.Aliases["chun"])
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TAISCORE_BATCH_WORKERS", "9")
	t.Setenv("TAISCORE_CACHE_MAXCOST", "0")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Batch.Workers)
	assert.False(t, c.Cache.Enabled, "cache is disabled without capacity")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: info\n")
	_, err := Load(path)
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		level string
	)
	require.NoError(t, Watch(path, func(c *Config, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		level = c.Log.Level
		mu.Unlock()
	}))

	writeConfig(t, dir, "log:\n  level: warn\n")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return level == "warn"
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "warn", Get().Log.Level)

	assert.NoError(t, Watch("", nil))
}
