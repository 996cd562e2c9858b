package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Output controls the export document defaults.
type Output struct {
	// Format selects the export shape: flat, simple, or reactive.
	Format string `toml:"format"`
	// Milliseconds emits integer millisecond times instead of seconds.
	Milliseconds bool `toml:"milliseconds"`
	// DefaultFile is where the artifact goes when --output is not given.
	DefaultFile string `toml:"default_file"`
}

// Whisper configures the transcription collaborator.
type Whisper struct {
	Model    string `toml:"model"`
	Device   string `toml:"device"`
	Language string `toml:"language"`
	// UVXBinary overrides the uvx launcher.
	UVXBinary string `toml:"uvx_binary"`
	// VocabularyHint passes the lyrics text as the initial prompt.
	VocabularyHint bool `toml:"vocabulary_hint"`
}

// Reactive holds the styling strings used verbatim in reactive output.
type Reactive struct {
	Font  string `toml:"font"`
	Color string `toml:"color"`
}

// Cache configures the transcript cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for lyralign.
type Config struct {
	Output   Output   `toml:"output"`
	Whisper  Whisper  `toml:"whisper"`
	Reactive Reactive `toml:"reactive"`
	Cache    Cache    `toml:"cache"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lyralign/config.toml")
}

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, normalizes, and validates a configuration file.
// An empty path falls back to the default location; a missing file at the
// default location just yields defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", false, fmt.Errorf("config file %s: %w", path, err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if os.IsNotExist(err) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("config file %s: %w", defaultPath, err)
	}
	return defaultPath, true, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
