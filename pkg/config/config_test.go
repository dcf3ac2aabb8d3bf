package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "bankapi:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 10*time.Second, cfg.Lock.Expiry)
	assert.Equal(t, 32, cfg.Lock.Tries)
	assert.Equal(t, 100*time.Millisecond, cfg.Lock.RetryDelay)
	assert.Equal(t, "bankapi:events", cfg.EventBus.Stream)
}

func TestLoad_FromEnvFileInParentDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.test"), []byte(
		"SERVER_PORT=8081\nREDIS_URL=redis://localhost:6379/1\nLOCK_TRIES=5\n",
	), 0o600))
	t.Chdir(nested)
	// godotenv never overrides variables already set, so clear them for this test.
	for _, k := range []string{"SERVER_PORT", "REDIS_URL", "LOCK_TRIES"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(".env.missing", ".env.test")
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, 5, cfg.Lock.Tries)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, ".env.dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.dir"), nil, 0o600))
	t.Chdir(nested)

	// A directory with the same name is skipped in favour of the file above it.
	got, err := findUp(".env.dir")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".env.dir"), got)

	_, err = findUp(".env.does-not-exist")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("abc"))
	assert.Equal(t, "po****able", maskValue("postgres://secret@host/db?sslmode=disable"))
}
