package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ce2grammaire/internal/progress"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the exercise core.
type Config struct {
	DataDir    string   `env:"DATA_DIR"`
	StorageKey string   `env:"STORAGE_KEY"`
	LogPath    string   `env:"LOG_PATH"`
	LogFormat  string   `env:"LOG_FORMAT"`
	LevelsPath string   `env:"LEVELS_PATH"`
	HTTPAddr   string   `env:"HTTP_ADDR"`
	Ephemeral  bool     `env:"EPHEMERAL"`
	UI         UIConfig `envPrefix:"UI_"`
}

type UIConfig struct {
	StyleVariant string `env:"STYLE"`
	ASCIIOnly    bool   `env:"ASCII"`
}

const envPrefix = "CE2_"

func DefaultConfig() Config {
	return Config{
		StorageKey: progress.DefaultKey,
		LogFormat:  "json",
		HTTPAddr:   "127.0.0.1:17322",
		UI: UIConfig{
			StyleVariant: "modern_arcade",
		},
	}
}

// LoadConfig returns the defaults overlaid with CE2_* environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	if c.StorageKey == "" {
		c.StorageKey = progress.DefaultKey
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = "127.0.0.1:17322"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "ce2grammaire")
	}
	if c.LogPath == "" && c.LogFormat == "json" {
		c.LogPath = filepath.Join(c.DataDir, "ce2.log")
	}

	return nil
}
