package config

import (
	"errors"
	"fmt"
	"strings"

	"lyralign/internal/format"
	"lyralign/internal/transcribe"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateReactive(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOutput() error {
	if !format.ValidShape(c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s", strings.Join(format.Shapes, ", "))
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if !transcribe.ValidModel(c.Whisper.Model) {
		return fmt.Errorf("whisper.model must be one of %s", strings.Join(transcribe.Models, ", "))
	}
	if c.Whisper.Device != transcribe.CPUDevice && c.Whisper.Device != transcribe.CUDADevice {
		return errors.New("whisper.device must be cpu or cuda")
	}
	return nil
}

func (c *Config) validateReactive() error {
	if strings.TrimSpace(c.Reactive.Font) == "" {
		return errors.New("reactive.font must be set")
	}
	if strings.TrimSpace(c.Reactive.Color) == "" {
		return errors.New("reactive.color must be set")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.Path == "" {
		return errors.New("cache.path must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
