// Package config manages the global (~/.config/nexcai/config.toml)
// configuration for nexcai.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-wide settings.
type Config struct {
	DefaultModel string         `toml:"default_model"`
	Keys         KeysConfig     `toml:"keys"`
	Ollama       OllamaConfig   `toml:"ollama"`
	Memory       MemoryConfig   `toml:"memory"`
	Prompt       PromptConfig   `toml:"prompt"`
	Weather      WeatherConfig  `toml:"weather"`
	Calendar     CalendarConfig `toml:"calendar"`
}

type KeysConfig struct {
	Anthropic string `toml:"anthropic"`
	OpenAI    string `toml:"openai"`
}

type OllamaConfig struct {
	Host       string `toml:"host"`
	ChatModel  string `toml:"chat_model"`
	EmbedModel string `toml:"embed_model"`
}

// MemoryConfig tunes the conversation buffer and the long-term store.
type MemoryConfig struct {
	MaxTurns       int     `toml:"max_turns"`
	TopK           int     `toml:"top_k"`
	DedupThreshold float64 `toml:"dedup_threshold"`
	DBPath         string  `toml:"db_path"` // empty = default data dir
}

type PromptConfig struct {
	MaxContextTokens int `toml:"max_context_tokens"`
}

type WeatherConfig struct {
	ForecastDays int `toml:"forecast_days"`
}

// CalendarConfig holds the Google Calendar OAuth client and target calendar.
type CalendarConfig struct {
	CalendarID   string `toml:"calendar_id"`
	Timezone     string `toml:"timezone"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenPath    string `toml:"token_path"` // empty = ~/.tokens/google_calendar.json
}

// Default returns sensible defaults for a local-first setup.
func Default() Config {
	return Config{
		DefaultModel: "ollama",
		Ollama: OllamaConfig{
			Host:       "http://localhost:11434",
			ChatModel:  "llama3:8b",
			EmbedModel: "nomic-embed-text",
		},
		Memory: MemoryConfig{
			MaxTurns:       10,
			TopK:           3,
			DedupThreshold: 0.8,
		},
		Prompt: PromptConfig{
			MaxContextTokens: 2000,
		},
		Weather: WeatherConfig{
			ForecastDays: 3,
		},
		Calendar: CalendarConfig{
			CalendarID: "primary",
			Timezone:   "Europe/Berlin",
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nexcai", "config.toml"), nil
}

// DBPath returns the effective SQLite database path for the long-term store.
func (c Config) DBPath() (string, error) {
	if c.Memory.DBPath != "" {
		return c.Memory.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "nexcai", "nexcai.db"), nil
}

// TokenPath returns the effective OAuth token cache path for the calendar.
func (c Config) TokenPath() (string, error) {
	if c.Calendar.TokenPath != "" {
		return c.Calendar.TokenPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tokens", "google_calendar.json"), nil
}

// Load reads the config file, applying defaults for any missing values.
// A missing file is not an error; defaults are returned.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine home dir.
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // File doesn't exist yet, use defaults.
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets env vars override config file API keys.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Keys.Anthropic = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Keys.OpenAI = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
