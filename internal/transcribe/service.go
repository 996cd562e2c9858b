package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lyralign/internal/logging"
	"lyralign/internal/lyrics"
)

// Word is a single transcribed word with timing, in chronological order.
type Word struct {
	// Text is the word as WhisperX reported it.
	Text string `json:"word"`
	// Clean is the normalized form used for matching.
	Clean string `json:"-"`
	// Start and End are seconds from the beginning of the audio.
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Service runs WhisperX transcriptions.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.UVXBinary == "" {
		cfg.UVXBinary = UVXCommand
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcribe"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the effective model selector.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Language returns the effective language code, empty for autodetect.
func (s *Service) Language() string {
	return s.cfg.Language
}

// Transcribe runs WhisperX on the audio file and returns the ordered word
// sequence. workDir receives the WhisperX output files. vocabulary, when
// non-empty, is passed as the initial prompt to bias recognition toward the
// expected words. Failures are fatal to the run; there is no retry.
func (s *Service) Transcribe(ctx context.Context, audioPath, workDir, vocabulary string) ([]Word, error) {
	if audioPath == "" {
		return nil, fmt.Errorf("transcribe: audio path required")
	}
	if workDir == "" {
		workDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe: ensure work dir: %w", err)
	}

	s.logger.Info("transcribing audio",
		logging.String("audio", audioPath),
		logging.String("model", s.Model()),
		logging.Bool("vocabulary_hint", vocabulary != ""),
	)

	args := s.buildArgs(audioPath, workDir, vocabulary)
	if err := s.run(ctx, s.cfg.UVXBinary, args...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(workDir, baseName+".json")

	words, err := LoadWords(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	s.logger.Info("transcription complete", logging.Int("words", len(words)))
	return words, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(audioPath, workDir, vocabulary string) []string {
	args := make([]string, 0, 16)

	args = append(args,
		"whisperx",
		audioPath,
		"--model", s.Model(),
		"--output_dir", workDir,
		"--output_format", "json",
	)

	if s.cfg.Language != "" {
		args = append(args, "--language", s.cfg.Language)
	}
	if vocabulary != "" {
		args = append(args, "--initial_prompt", vocabulary)
	}

	if s.cfg.Device == CUDADevice {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", cpuComputeType)
	}

	return args
}

// segment is one transcribed segment from WhisperX JSON output.
type segment struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// payload is the top-level WhisperX JSON structure.
type payload struct {
	Segments []segment `json:"segments"`
}

// LoadWords reads a WhisperX JSON file and flattens its segments into the
// ordered word sequence, dropping empty tokens and attaching normalized
// forms.
func LoadWords(jsonPath string) ([]Word, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	return ParseWords(data)
}

// ParseWords decodes WhisperX JSON output into the ordered word sequence.
func ParseWords(data []byte) ([]Word, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}

	var words []Word
	for _, seg := range p.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Text)
			if text == "" {
				continue
			}
			words = append(words, Word{
				Text:  text,
				Clean: lyrics.Normalize(text),
				Start: w.Start,
				End:   w.End,
			})
		}
	}
	return words, nil
}

// CleanTokens returns the normalized token sequence for matching.
func CleanTokens(words []Word) []string {
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = w.Clean
	}
	return tokens
}
