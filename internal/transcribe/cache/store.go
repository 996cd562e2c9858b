// Package cache persists transcription results so repeated runs against
// the same audio, model, and language skip the WhisperX call entirely.
//
// Entries are keyed by the audio file's SHA-256 digest plus the model and
// language selectors, and stored as JSON word sequences in a SQLite
// database. A file lock serializes access across concurrent CLI runs.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"lyralign/internal/lyrics"
	"lyralign/internal/transcribe"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    audio_digest TEXT NOT NULL,
    model        TEXT NOT NULL,
    language     TEXT NOT NULL,
    words_json   TEXT NOT NULL,
    word_count   INTEGER NOT NULL,
    created_at   TEXT NOT NULL,
    PRIMARY KEY (audio_digest, model, language)
);
`

// Store manages transcript persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the transcript database at path,
// acquiring the sibling lock file first so concurrent runs queue up
// instead of racing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: path}, nil
}

// Close releases the database connection and the file lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the cached word sequence for the key, if present.
func (s *Store) Lookup(ctx context.Context, digest, model, language string) ([]transcribe.Word, bool, error) {
	var wordsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT words_json FROM transcripts WHERE audio_digest = ? AND model = ? AND language = ?`,
		digest, model, language,
	).Scan(&wordsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup transcript: %w", err)
	}

	var words []transcribe.Word
	if err := json.Unmarshal([]byte(wordsJSON), &words); err != nil {
		return nil, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	// Normalized forms are not stored; rebuild them on the way out.
	for i := range words {
		words[i].Clean = lyrics.Normalize(words[i].Text)
	}
	return words, true, nil
}

// Save stores a word sequence under the key, replacing any previous entry.
func (s *Store) Save(ctx context.Context, digest, model, language string, words []transcribe.Word) error {
	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts
            (audio_digest, model, language, words_json, word_count, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		digest, model, language, string(wordsJSON), len(words),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int   `json:"entries"`
	Words   int   `json:"words"`
	Bytes   int64 `json:"bytes"`
}

// Stats reports entry and word counts plus the database file size.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(word_count), 0) FROM transcripts`,
	).Scan(&stats.Entries, &stats.Words)
	if err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		stats.Bytes = info.Size()
	}
	return stats, nil
}

// Clear removes every cached transcript and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transcripts`)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return deleted, nil
}

// DigestFile computes the SHA-256 digest of a file, hex-encoded.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("digest audio: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
