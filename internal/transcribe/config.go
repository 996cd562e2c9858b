package transcribe

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Config captures runtime settings for WhisperX invocations.
type Config struct {
	// Model is the Whisper model size. Larger models are more accurate
	// and slower.
	Model string
	// Device selects the compute device ("cpu" or "cuda").
	Device string
	// Language is an optional ISO 639-1 code passed to WhisperX. Empty
	// means autodetect.
	Language string
	// UVXBinary overrides the uvx launcher binary.
	UVXBinary string
}

// Model sizes, ordered from fastest to most accurate.
const (
	ModelTiny   = "tiny"
	ModelBase   = "base"
	ModelSmall  = "small"
	ModelMedium = "medium"
	ModelLarge  = "large"
)

// Models lists the valid model selectors in quality order.
var Models = []string{ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge}

// DefaultModel is used when no model is configured.
const DefaultModel = ModelBase

// Compute devices.
const (
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
	cpuComputeType = "float32"
)

// UVXCommand is the default launcher for the whisperx tool.
const UVXCommand = "uvx"

// ValidModel reports whether name is a known model selector.
func ValidModel(name string) bool {
	for _, m := range Models {
		if m == name {
			return true
		}
	}
	return false
}

// NormalizeLanguage parses a user-supplied language value (tag, code, or
// empty) into the ISO 639-1 base code WhisperX expects. Empty input stays
// empty, meaning autodetect.
func NormalizeLanguage(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", value, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}
