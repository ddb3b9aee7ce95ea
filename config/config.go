// Package config loads environment and file configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML tuning file (aioli.yml).
type Settings struct {
	Audit struct {
		Model            string  `yaml:"model"`
		MaxTokens        int     `yaml:"max_tokens"`
		Temperature      float64 `yaml:"temperature"`
		MaxParallel      int     `yaml:"max_parallel"`
		ContentMaxTokens int     `yaml:"content_max_tokens"`
	} `yaml:"audit"`
	Cache struct {
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"cache"`
}

// Config is the resolved process configuration.
type Config struct {
	Port            string
	GinMode         string
	AnthropicAPIKey string
	DataDir         string
	Settings        Settings
}

func defaultSettings() Settings {
	var s Settings
	s.Audit.MaxTokens = 2048
	s.Audit.MaxParallel = 4
	s.Audit.ContentMaxTokens = 6000
	s.Cache.TTLMinutes = 30
	return s
}

// Load reads .env files, environment variables and the optional settings
// file. Missing files are fine; malformed settings are an error.
func Load() (*Config, error) {
	// .env.development wins for local development, then plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		godotenv.Load()
	}

	cfg := &Config{
		Port:            envOr("PORT", "8082"),
		GinMode:         os.Getenv("GIN_MODE"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		DataDir:         envOr("DATA_DIR", "data"),
		Settings:        defaultSettings(),
	}

	settingsPath := envOr("AIOLI_SETTINGS", "aioli.yml")
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg.Settings); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
	}

	// Re-apply defaults for anything the file left zero.
	defaults := defaultSettings()
	if cfg.Settings.Audit.MaxTokens <= 0 {
		cfg.Settings.Audit.MaxTokens = defaults.Audit.MaxTokens
	}
	if cfg.Settings.Audit.MaxParallel <= 0 {
		cfg.Settings.Audit.MaxParallel = defaults.Audit.MaxParallel
	}
	if cfg.Settings.Audit.ContentMaxTokens <= 0 {
		cfg.Settings.Audit.ContentMaxTokens = defaults.Audit.ContentMaxTokens
	}
	if cfg.Settings.Cache.TTLMinutes <= 0 {
		cfg.Settings.Cache.TTLMinutes = defaults.Cache.TTLMinutes
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
