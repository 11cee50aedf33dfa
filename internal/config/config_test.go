package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultModel != "ollama" {
		t.Errorf("default model: got %q, want %q", cfg.DefaultModel, "ollama")
	}
	if cfg.Ollama.Host != "http://localhost:11434" {
		t.Errorf("ollama host: got %q", cfg.Ollama.Host)
	}
	if cfg.Ollama.ChatModel != "llama3:8b" {
		t.Errorf("ollama chat model: got %q", cfg.Ollama.ChatModel)
	}
	if cfg.Ollama.EmbedModel != "nomic-embed-text" {
		t.Errorf("ollama embed model: got %q", cfg.Ollama.EmbedModel)
	}
	if cfg.Memory.MaxTurns != 10 {
		t.Errorf("max turns: got %d, want 10", cfg.Memory.MaxTurns)
	}
	if cfg.Memory.TopK != 3 {
		t.Errorf("top k: got %d, want 3", cfg.Memory.TopK)
	}
	if cfg.Memory.DedupThreshold != 0.8 {
		t.Errorf("dedup threshold: got %f, want 0.8", cfg.Memory.DedupThreshold)
	}
	if cfg.Prompt.MaxContextTokens != 2000 {
		t.Errorf("max context tokens: got %d, want 2000", cfg.Prompt.MaxContextTokens)
	}
	if cfg.Weather.ForecastDays != 3 {
		t.Errorf("forecast days: got %d, want 3", cfg.Weather.ForecastDays)
	}
	if cfg.Calendar.CalendarID != "primary" {
		t.Errorf("calendar id: got %q, want %q", cfg.Calendar.CalendarID, "primary")
	}
	if cfg.Calendar.Timezone != "Europe/Berlin" {
		t.Errorf("timezone: got %q", cfg.Calendar.Timezone)
	}
}

func TestPath(t *testing.T) {
	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("expected config.toml, got %q", filepath.Base(path))
	}
}

func TestDBPath_Override(t *testing.T) {
	cfg := Default()
	cfg.Memory.DBPath = "/tmp/custom.db"

	got, err := cfg.DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if got != "/tmp/custom.db" {
		t.Errorf("got %q, want override", got)
	}
}

func TestDBPath_Default(t *testing.T) {
	got, err := Default().DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if filepath.Base(got) != "nexcai.db" {
		t.Errorf("expected nexcai.db, got %q", filepath.Base(got))
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestTokenPath_Override(t *testing.T) {
	cfg := Default()
	cfg.Calendar.TokenPath = "/tmp/token.json"

	got, err := cfg.TokenPath()
	if err != nil {
		t.Fatalf("TokenPath: %v", err)
	}
	if got != "/tmp/token.json" {
		t.Errorf("got %q, want override", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("ANTHROPIC_API_KEY", "test-key-123")
	defer os.Unsetenv("ANTHROPIC_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Keys.Anthropic != "test-key-123" {
		t.Errorf("expected env override, got %q", cfg.Keys.Anthropic)
	}
}

func TestSave_RoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.DefaultModel = "openai"
	cfg.Memory.TopK = 7
	cfg.Calendar.Timezone = "America/New_York"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DefaultModel != "openai" {
		t.Errorf("default model: got %q, want %q", loaded.DefaultModel, "openai")
	}
	if loaded.Memory.TopK != 7 {
		t.Errorf("top k: got %d, want 7", loaded.Memory.TopK)
	}
	if loaded.Calendar.Timezone != "America/New_York" {
		t.Errorf("timezone: got %q", loaded.Calendar.Timezone)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	// Point HOME at an empty dir so no config file is found.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ollama.ChatModel != "llama3:8b" {
		t.Errorf("expected defaults, got chat model %q", cfg.Ollama.ChatModel)
	}
}
