package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lyralign/internal/transcribe"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "transcripts.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLookup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	words := []transcribe.Word{
		{Text: "Hello", Clean: "hello", Start: 0.0, End: 0.5},
		{Text: "world!", Clean: "world", Start: 0.5, End: 1.0},
	}
	if err := store.Save(ctx, "digest1", "base", "en", words); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Lookup(ctx, "digest1", "base", "en")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("got %d words, want 2", len(got))
	}
	if got[1].Text != "world!" || got[1].Start != 0.5 {
		t.Errorf("unexpected word: %+v", got[1])
	}
	// Clean is rebuilt on lookup, not persisted.
	if got[1].Clean != "world" {
		t.Errorf("Clean = %q, want world", got[1].Clean)
	}
}

func TestLookupMiss(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Lookup(context.Background(), "missing", "base", "en")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestLookupKeyedByModelAndLanguage(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "d", "base", "en", []transcribe.Word{{Text: "a"}}); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := store.Lookup(ctx, "d", "large", "en"); ok {
		t.Error("different model should miss")
	}
	if _, ok, _ := store.Lookup(ctx, "d", "base", "de"); ok {
		t.Error("different language should miss")
	}
}

func TestClearAndStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, digest := range []string{"a", "b"} {
		if err := store.Save(ctx, digest, "base", "", []transcribe.Word{{Text: "x"}, {Text: "y"}}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 || stats.Words != 4 {
		t.Errorf("stats = %+v, want 2 entries / 4 words", stats)
	}

	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Errorf("entries after clear = %d, want 0", stats.Entries)
	}
}

func TestDigestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := DigestFile(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := DigestFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("digest not stable: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(first))
	}

	if _, err := DigestFile(filepath.Join(dir, "missing.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
