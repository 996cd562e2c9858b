package config

import (
	"lyralign/internal/format"
	"lyralign/internal/transcribe"
)

const (
	defaultOutputFile = "result.json"
	defaultCachePath  = "~/.cache/lyralign/transcripts.db"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Format:      format.ShapeFlat,
			DefaultFile: defaultOutputFile,
		},
		Whisper: Whisper{
			Model:          transcribe.DefaultModel,
			Device:         transcribe.CPUDevice,
			UVXBinary:      transcribe.UVXCommand,
			VocabularyHint: true,
		},
		Reactive: Reactive{
			Font:  format.DefaultFont,
			Color: format.DefaultColor,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
