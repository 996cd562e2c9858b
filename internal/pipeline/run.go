package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"lyralign/internal/align"
	"lyralign/internal/logging"
	"lyralign/internal/lyrics"
	"lyralign/internal/transcribe"
	"lyralign/internal/transcribe/cache"
)

// Transcriber produces the timed word sequence for an audio file. It is
// treated as a black box; failures are fatal to the run.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, workDir, vocabulary string) ([]transcribe.Word, error)
	Model() string
	Language() string
}

// Options parameterize a single alignment run.
type Options struct {
	AudioPath  string
	LyricsPath string
	// WorkDir receives transcriber output files. Empty means a temp dir
	// that is removed when the run finishes.
	WorkDir string
	// Cache is consulted before the transcriber and updated after it.
	// Nil disables caching.
	Cache *cache.Store
	// VocabularyHint passes the lyrics text to the transcriber to bias
	// recognition toward the expected words.
	VocabularyHint bool
	Logger         *slog.Logger
}

// Result is the outcome of a run: the fully timed word sequence plus
// match-rate diagnostics.
type Result struct {
	Timings          []align.Timing
	LyricsWords      int
	TranscriptWords  int
	Matched          int
	MatchPercent     int
	TranscriptCached bool
	RunID            string
}

// Run executes one alignment end to end.
func Run(ctx context.Context, transcriber Transcriber, opts Options) (*Result, error) {
	runID := uuid.NewString()
	logger := logging.NewComponentLogger(opts.Logger, "pipeline").With(logging.String("run_id", runID))

	words, lyricsText, err := lyrics.Load(opts.LyricsPath)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded lyrics",
		logging.String("path", opts.LyricsPath),
		logging.Int("words", len(words)),
	)

	vocabulary := ""
	if opts.VocabularyHint {
		vocabulary = lyricsText
	}

	transcript, cached, err := obtainTranscript(ctx, transcriber, opts, vocabulary, logger)
	if err != nil {
		return nil, err
	}

	mapping := align.Match(lyrics.CleanTokens(words), transcribe.CleanTokens(transcript))
	timings := align.Interpolate(words, transcript, mapping)

	result := &Result{
		Timings:          timings,
		LyricsWords:      len(words),
		TranscriptWords:  len(transcript),
		Matched:          len(mapping),
		MatchPercent:     align.MatchPercent(len(mapping), len(words)),
		TranscriptCached: cached,
		RunID:            runID,
	}

	logger.Info("alignment complete",
		logging.Int("matched", result.Matched),
		logging.Int("lyrics_words", result.LyricsWords),
		logging.Int("match_percent", result.MatchPercent),
		logging.Bool("transcript_cached", cached),
	)
	return result, nil
}

// obtainTranscript returns the timed word sequence, consulting the cache
// before invoking the transcriber.
func obtainTranscript(ctx context.Context, transcriber Transcriber, opts Options, vocabulary string, logger *slog.Logger) ([]transcribe.Word, bool, error) {
	digest := ""
	if opts.Cache != nil {
		var err error
		digest, err = cache.DigestFile(opts.AudioPath)
		if err != nil {
			return nil, false, err
		}
		words, hit, err := opts.Cache.Lookup(ctx, digest, transcriber.Model(), transcriber.Language())
		if err != nil {
			return nil, false, err
		}
		if hit {
			logger.Info("transcript cache hit",
				logging.String("model", transcriber.Model()),
				logging.Int("words", len(words)),
			)
			return words, true, nil
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "lyralign-")
		if err != nil {
			return nil, false, fmt.Errorf("create work dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}

	words, err := transcriber.Transcribe(ctx, opts.AudioPath, workDir, vocabulary)
	if err != nil {
		return nil, false, err
	}

	if opts.Cache != nil {
		if err := opts.Cache.Save(ctx, digest, transcriber.Model(), transcriber.Language(), words); err != nil {
			// A failed cache write costs a future transcription, not this run.
			logger.Warn("transcript cache write failed", logging.Error(err))
		}
	}
	return words, false, nil
}
