package align

import (
	"math"
	"testing"

	"lyralign/internal/lyrics"
	"lyralign/internal/transcribe"
)

func lw(words ...string) []lyrics.Word {
	out := make([]lyrics.Word, len(words))
	for i, w := range words {
		out[i] = lyrics.Word{Original: w, Clean: lyrics.Normalize(w), Line: 0}
	}
	return out
}

func tw(entries ...transcribe.Word) []transcribe.Word {
	return entries
}

func TestInterpolateMatchedPassthrough(t *testing.T) {
	words := lw("hello", "world")
	transcript := tw(
		transcribe.Word{Text: "hello", Start: 0.004, End: 0.5},
		transcribe.Word{Text: "world", Start: 0.5, End: 1.006},
	)
	timings := Interpolate(words, transcript, map[int]int{0: 0, 1: 1})

	if len(timings) != 2 {
		t.Fatalf("got %d timings, want 2", len(timings))
	}
	if timings[0].Start != 0.0 || timings[0].End != 0.5 {
		t.Errorf("first timing = %+v, want rounded 0.0/0.5", timings[0])
	}
	if timings[1].End != 1.01 {
		t.Errorf("second end = %v, want 1.01", timings[1].End)
	}
	for _, timing := range timings {
		if timing.Estimated {
			t.Errorf("matched timing flagged estimated: %+v", timing)
		}
	}
}

func TestInterpolateGapMidpoint(t *testing.T) {
	words := lw("a", "b", "c")
	transcript := tw(
		transcribe.Word{Text: "a", Start: 0.0, End: 0.3},
		transcribe.Word{Text: "c", Start: 1.0, End: 1.3},
	)
	timings := Interpolate(words, transcript, map[int]int{0: 0, 2: 1})

	gap := timings[1]
	if !gap.Estimated {
		t.Fatal("word b should be estimated")
	}
	if gap.Start != 0.65 {
		t.Errorf("estimated start = %v, want 0.65", gap.Start)
	}
	if gap.End != 0.85 {
		t.Errorf("estimated end = %v, want 0.85", gap.End)
	}
}

func TestInterpolateMultiWordGapSharesMidpoint(t *testing.T) {
	// Consecutive unmatched words between two anchors all interpolate from
	// the same previous end and next start.
	words := lw("a", "b", "c", "d")
	transcript := tw(
		transcribe.Word{Text: "a", Start: 0.0, End: 0.5},
		transcribe.Word{Text: "d", Start: 2.0, End: 2.4},
	)
	timings := Interpolate(words, transcript, map[int]int{0: 0, 3: 1})

	for _, i := range []int{1, 2} {
		if timings[i].Start != 1.25 {
			t.Errorf("timings[%d].Start = %v, want 1.25", i, timings[i].Start)
		}
		if timings[i].End != 1.45 {
			t.Errorf("timings[%d].End = %v, want 1.45", i, timings[i].End)
		}
	}
}

func TestInterpolateTrailingRunSharesAnchor(t *testing.T) {
	// Every word in a trailing unmatched run extrapolates from the last
	// matched end, not from the previous estimate.
	words := lw("a", "b", "c")
	transcript := tw(transcribe.Word{Text: "a", Start: 0.0, End: 1.0})
	timings := Interpolate(words, transcript, map[int]int{0: 0})

	for _, i := range []int{1, 2} {
		if timings[i].Start != 1.3 {
			t.Errorf("timings[%d].Start = %v, want 1.3", i, timings[i].Start)
		}
		if timings[i].End != 1.5 {
			t.Errorf("timings[%d].End = %v, want 1.5", i, timings[i].End)
		}
		if !timings[i].Estimated {
			t.Errorf("timings[%d] should be estimated", i)
		}
	}
}

func TestInterpolateNoMatches(t *testing.T) {
	words := lw("x", "y")
	timings := Interpolate(words, nil, map[int]int{})

	if len(timings) != len(words) {
		t.Fatalf("got %d timings, want %d", len(timings), len(words))
	}
	for i, timing := range timings {
		if !timing.Estimated {
			t.Errorf("timings[%d] should be estimated", i)
		}
		if timing.Start != 0.3 || timing.End != 0.5 {
			t.Errorf("timings[%d] = %v/%v, want 0.3/0.5", i, timing.Start, timing.End)
		}
	}
}

func TestInterpolateInvariants(t *testing.T) {
	words := lw("a", "b", "c", "d", "e")
	transcript := tw(
		transcribe.Word{Text: "a", Start: 0.1, End: 0.4},
		transcribe.Word{Text: "d", Start: 3.0, End: 3.2},
	)
	timings := Interpolate(words, transcript, map[int]int{0: 0, 3: 1})

	if len(timings) != len(words) {
		t.Fatalf("every lyrics word needs a timing: got %d, want %d", len(timings), len(words))
	}
	for i, timing := range timings {
		if timing.Start > timing.End {
			t.Errorf("timings[%d]: start %v > end %v", i, timing.Start, timing.End)
		}
		if timing.Estimated {
			span := timing.End - timing.Start
			if math.Abs(span-estimatedSpan) > 0.011 {
				t.Errorf("timings[%d]: estimated span %v, want %v", i, span, estimatedSpan)
			}
		}
	}
}

func TestMatchPercent(t *testing.T) {
	tests := []struct {
		matched, total, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{2, 3, 66},
		{3, 3, 100},
	}
	for _, tc := range tests {
		if got := MatchPercent(tc.matched, tc.total); got != tc.want {
			t.Errorf("MatchPercent(%d, %d) = %d, want %d", tc.matched, tc.total, got, tc.want)
		}
	}
}
