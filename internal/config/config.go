package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDBPath   = "ASKAR_DB_PATH"
	EnvStorage  = "ASKAR_STORAGE"
	EnvLanguage = "ASKAR_LANGUAGE"
	EnvLogLevel = "ASKAR_LOG_LEVEL"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
	File   string `yaml:"file"`
}

type Config struct {
	DBPath           string        `yaml:"db_path"`
	Storage          string        `yaml:"storage"`
	Language         string        `yaml:"language"`
	Theme            string        `yaml:"theme"`
	AutoSaveInterval time.Duration `yaml:"auto_save_interval"`
	Log              LogConfig     `yaml:"log"`
	LastEmail        string        `yaml:"last_email"`
}

func DefaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yml")
}

// DefaultDBPath puts the store beside the executable, named after the backend.
func DefaultDBPath(storage string) string {
	name := "askar.json"
	if storage == db.BackendSQLite {
		name = "askar.db"
	}
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

func Default() *Config {
	return &Config{
		Storage:          db.BackendJSON,
		Language:         string(i18n.English),
		Theme:            "dark",
		AutoSaveInterval: 3 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.fill()
	return cfg, nil
}

func (c *Config) fill() {
	if c.Storage == "" {
		c.Storage = db.BackendJSON
	}
	if c.Language == "" {
		c.Language = string(i18n.English)
	}
	if c.AutoSaveInterval <= 0 {
		c.AutoSaveInterval = 3 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath(c.Storage)
	}
	c.DBPath = expandHome(c.DBPath)
	c.Log.File = expandHome(c.Log.File)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// ApplyEnv loads the given .env files (all missing ones are skipped) and then
// lets ASKAR_* variables override the file settings.
func (c *Config) ApplyEnv(envFiles ...string) error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	storageSet := os.Getenv(EnvStorage) != ""
	c.Storage = getEnv(EnvStorage, c.Storage)
	c.Language = getEnv(EnvLanguage, c.Language)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)

	if path := os.Getenv(EnvDBPath); path != "" {
		c.DBPath = expandHome(path)
	} else if storageSet && c.DBPath == DefaultDBPath(otherBackend(c.Storage)) {
		c.DBPath = DefaultDBPath(c.Storage)
	}
	return nil
}

func otherBackend(storage string) string {
	if storage == db.BackendSQLite {
		return db.BackendJSON
	}
	return db.BackendSQLite
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	switch c.Storage {
	case db.BackendJSON, db.BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage, db.BackendJSON, db.BackendSQLite)
	}
	if !i18n.Supported(i18n.Language(c.Language)) {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.DBPath == "" {
		return errors.New("db_path is empty")
	}
	return nil
}

// LogFile is where the logger writes; by default next to the store.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(c.DBPath), "askar.log")
}

func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
