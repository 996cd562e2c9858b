package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lyralign/internal/format"
	"lyralign/internal/logging"
	"lyralign/internal/lyrics"
	"lyralign/internal/pipeline"
	"lyralign/internal/transcribe"
	"lyralign/internal/transcribe/cache"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var (
		output       string
		model        string
		language     string
		font         string
		color        string
		milliseconds bool
		simple       bool
		reactive     bool
		noCache      bool
		noHint       bool
		workDir      string
	)

	cmd := &cobra.Command{
		Use:   "align <audio-file> <lyrics-file>",
		Short: "Force-align audio with lyrics and write word timings as JSON",
		Long: `Align transcribes the audio with WhisperX, matches the transcript
against the lyrics word by word, interpolates timings for words the
transcription missed, and writes the timed sequence as an indented JSON
document.

A subtitle sidecar next to the lyrics file (lyrics_s.txt for lyrics.txt)
is merged into reactive output when present.

Examples:
  lyralign align song.mp3 song.txt
  lyralign align song.mp3 song.txt -o timings.json --model small
  lyralign align song.mp3 song.txt --reactive --font "bold 64px Inter"
  lyralign align song.mp3 song.txt --simple --milliseconds`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			audioPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}
			lyricsPath, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve lyrics path: %w", err)
			}
			if _, err := os.Stat(audioPath); err != nil {
				return fmt.Errorf("audio file: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Flags override config where set.
			if cmd.Flags().Changed("model") {
				cfg.Whisper.Model = strings.ToLower(strings.TrimSpace(model))
			}
			if !transcribe.ValidModel(cfg.Whisper.Model) {
				return fmt.Errorf("model must be one of %s", strings.Join(transcribe.Models, ", "))
			}
			if cmd.Flags().Changed("language") {
				code, err := transcribe.NormalizeLanguage(language)
				if err != nil {
					return err
				}
				cfg.Whisper.Language = code
			}
			if cmd.Flags().Changed("font") {
				cfg.Reactive.Font = font
			}
			if cmd.Flags().Changed("color") {
				cfg.Reactive.Color = color
			}
			if cmd.Flags().Changed("milliseconds") {
				cfg.Output.Milliseconds = milliseconds
			}
			switch {
			case reactive:
				cfg.Output.Format = format.ShapeReactive
			case simple:
				cfg.Output.Format = format.ShapeSimple
			case cmd.Flags().Changed("reactive") || cmd.Flags().Changed("simple"):
				cfg.Output.Format = format.ShapeFlat
			}

			outputPath := output
			if outputPath == "" {
				outputPath = cfg.Output.DefaultFile
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var store *cache.Store
			if cfg.Cache.Enabled && !noCache {
				store, err = cache.Open(cfg.Cache.Path)
				if err != nil {
					// The cache is an optimization; a broken cache should
					// not block an alignment.
					logger.Warn("transcript cache unavailable", logging.Error(err))
					store = nil
				} else {
					defer store.Close()
				}
			}

			transcriber := transcribe.NewService(transcribe.Config{
				Model:     cfg.Whisper.Model,
				Device:    cfg.Whisper.Device,
				Language:  cfg.Whisper.Language,
				UVXBinary: cfg.Whisper.UVXBinary,
			}, logger)

			result, err := pipeline.Run(runCtx, transcriber, pipeline.Options{
				AudioPath:      audioPath,
				LyricsPath:     lyricsPath,
				WorkDir:        workDir,
				Cache:          store,
				VocabularyHint: cfg.Whisper.VocabularyHint && !noHint,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			subtitles, err := lyrics.LoadSubtitles(lyricsPath)
			if err != nil {
				return err
			}
			if subtitles != nil {
				logger.Info("loaded subtitle sidecar",
					logging.String("path", lyrics.SidecarPath(lyricsPath)),
					logging.Int("lines", len(subtitles)),
				)
			}

			document, err := format.Render(result.Timings, format.Options{
				Milliseconds: cfg.Output.Milliseconds,
				Simple:       cfg.Output.Format == format.ShapeSimple,
				Reactive:     cfg.Output.Format == format.ShapeReactive,
				Font:         cfg.Reactive.Font,
				Color:        cfg.Reactive.Color,
				Subtitles:    subtitles,
			})
			if err != nil {
				return err
			}

			if err := writeDocument(outputPath, document); err != nil {
				return err
			}
			logger.Info("saved timings",
				logging.String("output", outputPath),
				logging.String("format", cfg.Output.Format),
			)

			if isatty.IsTerminal(os.Stdout.Fd()) {
				printSummary(cmd, result, outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON path (default: result.json)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Whisper model size: tiny, base, small, medium, large (larger = more accurate, slower)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language hint for transcription (default: autodetect)")
	cmd.Flags().BoolVar(&milliseconds, "milliseconds", false, "Emit times as integer milliseconds instead of seconds")
	cmd.Flags().BoolVarP(&simple, "simple", "s", false, "Simple output: {word: time} map")
	cmd.Flags().BoolVarP(&reactive, "reactive", "r", false, "Reactive output: lines with relative word timings")
	cmd.Flags().StringVar(&font, "font", "", "Font for reactive format")
	cmd.Flags().StringVar(&color, "color", "", "Color for reactive format")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the transcript cache")
	cmd.Flags().BoolVar(&noHint, "no-hint", false, "Do not pass the lyrics as a vocabulary hint")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "Keep WhisperX output files in this directory")

	return cmd
}

// writeDocument writes v as indented UTF-8 JSON without HTML escaping.
func writeDocument(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		_ = file.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func printSummary(cmd *cobra.Command, result *pipeline.Result, outputPath string) {
	transcript := strconv.Itoa(result.TranscriptWords)
	if result.TranscriptCached {
		transcript += " (cached)"
	}
	rows := [][]string{
		{"Lyrics words", strconv.Itoa(result.LyricsWords)},
		{"Transcribed words", transcript},
		{"Matched", fmt.Sprintf("%d (%d%%)", result.Matched, result.MatchPercent)},
		{"Estimated", strconv.Itoa(result.LyricsWords - result.Matched)},
		{"Output", outputPath},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(rows))
}
