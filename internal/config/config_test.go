package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Storage)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 3*time.Second, cfg.AutoSaveInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultDBPath("json"), cfg.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := `db_path: ~/notes/askar.db
storage: sqlite
language: ru
auto_save_interval: 10s
log:
  level: debug
  format: console
last_email: alice@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes", "askar.db"), cfg.DBPath)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, 10*time.Second, cfg.AutoSaveInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "alice@example.com", cfg.LastEmail)
	assert.Equal(t, filepath.Join(home, "notes", "askar.log"), cfg.LogFile())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := Default()
	cfg.DBPath = "/var/lib/askar/askar.json"
	cfg.LastEmail = "bob@example.com"

	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t, EnvDBPath, EnvStorage, EnvLanguage, EnvLogLevel)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ASKAR_LANGUAGE=ru\nASKAR_LOG_LEVEL=warn\n"), 0600))
	t.Setenv(EnvDBPath, filepath.Join(dir, "other.json"))

	cfg := Default()
	cfg.fill()
	require.NoError(t, cfg.ApplyEnv(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "other.json"), cfg.DBPath)
	assert.Equal(t, "json", cfg.Storage)
}

func TestApplyEnvStorageSwitchesDefaultPath(t *testing.T) {
	clearEnv(t, EnvDBPath, EnvLanguage, EnvLogLevel)
	t.Setenv(EnvStorage, "sqlite")

	cfg := Default()
	cfg.fill()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, DefaultDBPath("sqlite"), cfg.DBPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"sqlite", func(c *Config) { c.Storage = "sqlite" }, true},
		{"unknown storage", func(c *Config) { c.Storage = "postgres" }, false},
		{"unknown language", func(c *Config) { c.Language = "de" }, false},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"empty path", func(c *Config) { c.DBPath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.fill()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
