package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/expect/pkg/adapters/file"
	"github.com/aretw0/expect/pkg/adapters/memory"
	"github.com/aretw0/expect/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "expect.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expect.yaml")
	content := `
log_level: debug
log_format: json
patterns: ./patterns.yaml
store:
  driver: redis
  redis:
    addr: cache:6379
    db: 2
    ttl: 1h
http:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "./patterns.yaml", cfg.Patterns)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "expect:", cfg.Store.Redis.Prefix, "unset fields keep their defaults")
	assert.Equal(t, 9000, cfg.HTTP.Port)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expect.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store": {"driver": "memory"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("store: ["), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	driver := filepath.Join(dir, "driver.yaml")
	require.NoError(t, os.WriteFile(driver, []byte("store:\n  driver: sqlite\n"), 0644))
	_, err = Load(driver)
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"EXPECT_LOG_LEVEL":    "warn",
		"EXPECT_STORE_DRIVER": "redis",
		"EXPECT_REDIS_ADDR":   "10.0.0.1:6379",
		"EXPECT_PORT":         "7070",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "10.0.0.1:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 7070, cfg.HTTP.Port)

	env["EXPECT_PORT"] = "http"
	assert.Error(t, cfg.ApplyEnv(lookup))
}

func TestOpenStore(t *testing.T) {
	cfg := Default()

	cfg.Store.Driver = "memory"
	store, err := cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	cfg.Store.Driver = "file"
	cfg.Store.Dir = t.TempDir()
	store, err = cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, store)

	mr := miniredis.RunT(t)
	cfg.Store.Driver = "redis"
	cfg.Store.Redis.Addr = mr.Addr()
	cfg.Store.Redis.TTL = "1m"
	store, err = cfg.OpenStore()
	require.NoError(t, err)
	require.IsType(t, &redis.Store{}, store)
	defer store.(*redis.Store).Close()
	require.NoError(t, store.(*redis.Store).Ping(t.Context()))

	cfg.Store.Redis.TTL = "soon"
	_, err = cfg.OpenStore()
	assert.Error(t, err)
}

func TestRegistryAndLogger(t *testing.T) {
	cfg := Default()
	reg, err := cfg.Registry()
	require.NoError(t, err)
	_, ok := reg.Lookup("email")
	assert.True(t, ok)

	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns:\n  sku: '^[A-Z]{3}$'\n"), 0644))
	cfg.Patterns = path
	reg, err = cfg.Registry()
	require.NoError(t, err)
	_, ok = reg.Lookup("sku")
	assert.True(t, ok)

	var buf bytes.Buffer
	cfg.LogFormat = "json"
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)
	logger.Info("ready")
	assert.Contains(t, buf.String(), `"msg":"ready"`)

	cfg.LogLevel = "chatty"
	_, err = cfg.Logger(&buf)
	assert.Error(t, err)
}
