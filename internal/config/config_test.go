package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Output.Format != "flat" {
		t.Errorf("default format = %q", cfg.Output.Format)
	}
	if cfg.Whisper.Model != "base" {
		t.Errorf("default model = %q", cfg.Whisper.Model)
	}
	if cfg.Output.DefaultFile != "result.json" {
		t.Errorf("default output file = %q", cfg.Output.DefaultFile)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[output]
format = "Reactive"
milliseconds = true

[whisper]
model = "SMALL"
language = "en-US"

[reactive]
font = "20px Mono"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config to resolve and exist")
	}
	if cfg.Output.Format != "reactive" {
		t.Errorf("format = %q, want normalized reactive", cfg.Output.Format)
	}
	if !cfg.Output.Milliseconds {
		t.Error("milliseconds not applied")
	}
	if cfg.Whisper.Model != "small" {
		t.Errorf("model = %q, want small", cfg.Whisper.Model)
	}
	if cfg.Whisper.Language != "en" {
		t.Errorf("language = %q, want canonical en", cfg.Whisper.Language)
	}
	if cfg.Reactive.Font != "20px Mono" {
		t.Errorf("font = %q", cfg.Reactive.Font)
	}
	// Untouched sections keep defaults.
	if cfg.Reactive.Color != "white" {
		t.Errorf("color = %q, want default white", cfg.Reactive.Color)
	}
}

func TestLoadRejectsBadModel(t *testing.T) {
	path := writeConfig(t, "[whisper]\nmodel = \"gigantic\"\n")
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown model")
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	path := writeConfig(t, "[output]\nformat = \"yaml\"\n")
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown format")
	}
}

func TestLoadRejectsBadDevice(t *testing.T) {
	path := writeConfig(t, "[whisper]\ndevice = \"tpu\"\n")
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown device")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, _, _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicitly named config file must exist")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandPath("~/x/y.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x", "y.db") {
		t.Errorf("expandPath = %q", got)
	}
}

func TestCachePathExpanded(t *testing.T) {
	path := writeConfig(t, "[cache]\npath = \"~/.cache/test.db\"\n")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(cfg.Cache.Path, "~") {
		t.Errorf("cache path not expanded: %q", cfg.Cache.Path)
	}
}

func TestSampleConfigNotEmpty(t *testing.T) {
	if !strings.Contains(SampleConfig(), "[whisper]") {
		t.Error("sample config should document the whisper section")
	}
}
