package config

import (
	"strings"

	"lyralign/internal/transcribe"
)

// normalize canonicalizes selector values and expands paths.
func (c *Config) normalize() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Output.DefaultFile = strings.TrimSpace(c.Output.DefaultFile)
	if c.Output.DefaultFile == "" {
		c.Output.DefaultFile = defaultOutputFile
	}

	c.Whisper.Model = strings.ToLower(strings.TrimSpace(c.Whisper.Model))
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	c.Whisper.UVXBinary = strings.TrimSpace(c.Whisper.UVXBinary)
	if c.Whisper.UVXBinary == "" {
		c.Whisper.UVXBinary = transcribe.UVXCommand
	}

	language, err := transcribe.NormalizeLanguage(c.Whisper.Language)
	if err != nil {
		return err
	}
	c.Whisper.Language = language

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if c.Cache.Path != "" {
		expanded, err := expandPath(c.Cache.Path)
		if err != nil {
			return err
		}
		c.Cache.Path = expanded
	}
	return nil
}
