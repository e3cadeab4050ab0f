package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvConfigPath        = "MLB_WIRE_CONFIG"
	EnvLogLevel          = "MLB_WIRE_LOG_LEVEL"
	EnvSheetsCredentials = "MLB_WIRE_SHEETS_CREDENTIALS"
)

type Config struct {
	Theme struct {
		Dark        bool   `yaml:"dark"`
		AccentColor string `yaml:"accent_color"`
	} `yaml:"theme"`
	Behavior struct {
		RequestDelay       time.Duration `yaml:"request_delay"`
		FetchTimeout       time.Duration `yaml:"fetch_timeout"`
		WindowBuffer       time.Duration `yaml:"window_buffer"`
		MaxArticlesPerFeed int           `yaml:"max_articles_per_feed"`
		UserAgent          string        `yaml:"user_agent"`
	} `yaml:"behavior"`
	Display struct {
		CompactView      bool   `yaml:"compact_view"`
		DateFormat       string `yaml:"date_format"`
		DescriptionWidth int    `yaml:"description_width"`
	} `yaml:"display"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
	} `yaml:"log"`
	Export struct {
		JSONPath string `yaml:"json_path"`
		Sheets   struct {
			CredentialsFile string `yaml:"credentials_file"`
			SpreadsheetID   string `yaml:"spreadsheet_id"`
		} `yaml:"sheets"`
	} `yaml:"export"`
}

// DataDir is where config and credentials live by default.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mlb-wire"), nil
}

// DefaultPath resolves the config path: MLB_WIRE_CONFIG, then
// ~/.mlb-wire/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Theme.Dark = true
	setDefaults(cfg)
	return cfg
}

// LoadConfig reads path (a missing file is not an error), loads .env from
// the working directory, applies environment overrides and fills defaults.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Theme.Dark = true

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	setDefaults(cfg)
	return cfg, nil
}

// SaveConfig writes cfg to path through a temporary file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("error writing temporary config: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvSheetsCredentials); v != "" {
		cfg.Export.Sheets.CredentialsFile = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Theme.AccentColor == "" {
		cfg.Theme.AccentColor = "#2DA44E"
	}
	if cfg.Behavior.RequestDelay == 0 {
		cfg.Behavior.RequestDelay = time.Second
	}
	if cfg.Behavior.FetchTimeout == 0 {
		cfg.Behavior.FetchTimeout = 10 * time.Second
	}
	if cfg.Behavior.WindowBuffer == 0 {
		cfg.Behavior.WindowBuffer = 6 * time.Hour
	}
	if cfg.Display.DateFormat == "" {
		cfg.Display.DateFormat = "Jan 02, 2006 15:04"
	}
	if cfg.Display.DescriptionWidth == 0 {
		cfg.Display.DescriptionWidth = 200
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Export.Sheets.CredentialsFile == "" {
		if dir, err := DataDir(); err == nil {
			cfg.Export.Sheets.CredentialsFile = filepath.Join(dir, "credentials.json")
		}
	}
}
