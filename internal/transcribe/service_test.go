package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const whisperxFixture = `{
  "segments": [
    {
      "text": "Hello world.",
      "words": [
        {"word": "Hello", "start": 0.0, "end": 0.5},
        {"word": "world.", "start": 0.5, "end": 1.0},
        {"word": "  ", "start": 1.0, "end": 1.0}
      ]
    },
    {
      "text": "Goodbye.",
      "words": [
        {"word": "Goodbye.", "start": 2.0, "end": 2.5}
      ]
    }
  ]
}`

func TestParseWords(t *testing.T) {
	words, err := ParseWords([]byte(whisperxFixture))
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3 (blank token dropped)", len(words))
	}
	if words[1].Text != "world." || words[1].Clean != "world" {
		t.Errorf("word 1 = %+v", words[1])
	}
	if words[2].Start != 2.0 || words[2].End != 2.5 {
		t.Errorf("word 2 timing = %v/%v", words[2].Start, words[2].End)
	}
}

func TestParseWordsBadJSON(t *testing.T) {
	if _, err := ParseWords([]byte("{nope")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestBuildArgs(t *testing.T) {
	svc := NewService(Config{Model: ModelSmall, Language: "de"}, nil)
	args := svc.buildArgs("/music/song.mp3", "/tmp/work", "some lyrics text")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"whisperx /music/song.mp3",
		"--model small",
		"--output_dir /tmp/work",
		"--output_format json",
		"--language de",
		"--initial_prompt some lyrics text",
		"--device cpu --compute_type float32",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestBuildArgsDefaults(t *testing.T) {
	svc := NewService(Config{}, nil)
	joined := strings.Join(svc.buildArgs("a.wav", "w", ""), " ")

	if !strings.Contains(joined, "--model base") {
		t.Errorf("default model not applied: %s", joined)
	}
	if strings.Contains(joined, "--language") {
		t.Errorf("language should be omitted for autodetect: %s", joined)
	}
	if strings.Contains(joined, "--initial_prompt") {
		t.Errorf("prompt should be omitted when empty: %s", joined)
	}
}

func TestBuildArgsCUDA(t *testing.T) {
	svc := NewService(Config{Device: CUDADevice}, nil)
	joined := strings.Join(svc.buildArgs("a.wav", "w", ""), " ")
	if !strings.Contains(joined, "--device cuda") {
		t.Errorf("cuda device not selected: %s", joined)
	}
	if strings.Contains(joined, "--compute_type") {
		t.Errorf("compute type is a cpu-only flag: %s", joined)
	}
}

func TestTranscribeWithRunner(t *testing.T) {
	workDir := t.TempDir()
	svc := NewService(Config{Model: ModelTiny}, nil)

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		// Emulate WhisperX writing its JSON artifact next to the audio.
		return os.WriteFile(filepath.Join(workDir, "song.json"), []byte(whisperxFixture), 0o644)
	})

	words, err := svc.Transcribe(context.Background(), "/music/song.mp3", workDir, "hint")
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	if gotName != UVXCommand {
		t.Errorf("ran %q, want %q", gotName, UVXCommand)
	}
	if !strings.Contains(strings.Join(gotArgs, " "), "--initial_prompt hint") {
		t.Errorf("vocabulary hint missing from args: %v", gotArgs)
	}
}

func TestTranscribeRunnerFailure(t *testing.T) {
	svc := NewService(Config{}, nil)
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("model download failed")
	})

	if _, err := svc.Transcribe(context.Background(), "a.mp3", t.TempDir(), ""); err == nil {
		t.Fatal("expected transcription failure to propagate")
	}
}

func TestTranscribeRequiresAudioPath(t *testing.T) {
	svc := NewService(Config{}, nil)
	if _, err := svc.Transcribe(context.Background(), "", t.TempDir(), ""); err == nil {
		t.Fatal("expected error for missing audio path")
	}
}

func TestValidModel(t *testing.T) {
	for _, m := range Models {
		if !ValidModel(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	if ValidModel("huge") {
		t.Error("unknown model accepted")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"en", "en"},
		{"en-US", "en"},
		{"deu", "de"},
		{"pt-BR", "pt"},
	}
	for _, tc := range tests {
		got, err := NormalizeLanguage(tc.input)
		if err != nil {
			t.Errorf("NormalizeLanguage(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	if _, err := NormalizeLanguage("!!"); err == nil {
		t.Error("expected error for invalid tag")
	}
}
