package format

import (
	"fmt"
	"math"

	"lyralign/internal/align"
	"lyralign/internal/lyrics"
)

// Shape selectors for the export document.
const (
	ShapeFlat     = "flat"
	ShapeSimple   = "simple"
	ShapeReactive = "reactive"
)

// Shapes lists the valid format selectors.
var Shapes = []string{ShapeFlat, ShapeSimple, ShapeReactive}

// Reactive styling defaults, used verbatim in the word entries.
const (
	DefaultFont  = "bold 80px Baloo2"
	DefaultColor = "white"
)

// Options selects and parameterizes the export shape. Reactive takes
// precedence over Simple when both are set.
type Options struct {
	Milliseconds bool
	Simple       bool
	Reactive     bool
	Font         string
	Color        string
	// Subtitles is the optional sidecar line sequence, indexed by the same
	// line numbering as the timings.
	Subtitles []string
}

// Shape reports which export shape the options select.
func (o Options) Shape() string {
	switch {
	case o.Reactive:
		return ShapeReactive
	case o.Simple:
		return ShapeSimple
	default:
		return ShapeFlat
	}
}

// ValidShape reports whether name is a known format selector.
func ValidShape(name string) bool {
	for _, s := range Shapes {
		if s == name {
			return true
		}
	}
	return false
}

// MillisEntry is one flat entry with times converted to milliseconds.
type MillisEntry struct {
	Word  string `json:"word"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
}

// Render converts the timing sequence into the selected export document.
// The result is ready for JSON serialization.
func Render(timings []align.Timing, opts Options) (any, error) {
	switch {
	case opts.Reactive:
		return renderReactive(timings, opts)
	case opts.Simple:
		return renderSimple(timings, opts.Milliseconds), nil
	default:
		return renderFlat(timings, opts.Milliseconds), nil
	}
}

func renderFlat(timings []align.Timing, milliseconds bool) any {
	if !milliseconds {
		// Already the export shape; line and estimated pass through.
		return timings
	}
	entries := make([]MillisEntry, 0, len(timings))
	for _, timing := range timings {
		entries = append(entries, MillisEntry{
			Word:  timing.Word,
			Start: toMillis(timing.Start),
			End:   toMillis(timing.End),
		})
	}
	return entries
}

// renderSimple maps each word's normalized form to its start time. Repeats
// of the same normalized word get _2, _3, ... suffixes in first-seen order;
// words that normalize to nothing are dropped.
func renderSimple(timings []align.Timing, milliseconds bool) map[string]any {
	result := make(map[string]any, len(timings))
	counts := make(map[string]int, len(timings))

	for _, timing := range timings {
		clean := lyrics.Normalize(timing.Word)
		if clean == "" {
			continue
		}

		counts[clean]++
		key := clean
		if counts[clean] > 1 {
			key = fmt.Sprintf("%s_%d", clean, counts[clean])
		}

		if milliseconds {
			result[key] = toMillis(timing.Start)
		} else {
			result[key] = timing.Start
		}
	}
	return result
}

// toMillis truncates seconds to whole milliseconds. The epsilon absorbs
// float64 representation error so 1.239s converts to 1239ms, not 1238.
func toMillis(seconds float64) int64 {
	return int64(math.Floor(seconds*1000 + 1e-6))
}
