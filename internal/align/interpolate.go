package align

import (
	"math"

	"lyralign/internal/lyrics"
	"lyralign/internal/transcribe"
)

const (
	// tailStep is how far past the last matched word a trailing estimate lands.
	tailStep = 0.3
	// estimatedSpan is the duration assigned to every estimated timing.
	estimatedSpan = 0.2
)

// Timing is the final per-word result: the original lyrics word with its
// matched or estimated start and end times.
type Timing struct {
	Word      string  `json:"word"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Estimated bool    `json:"estimated,omitempty"`
	Line      int     `json:"line"`
}

// Interpolate produces one Timing per lyrics word, in lyrics order. Mapped
// words take the transcript times directly. Unmapped words are estimated:
// the midpoint between the nearest preceding matched end and the nearest
// following matched start, or a fixed step past the preceding matched end
// when nothing follows. Every word in a trailing unmatched run derives from
// the same last matched anchor, not from the previous estimate.
func Interpolate(words []lyrics.Word, transcript []transcribe.Word, mapping map[int]int) []Timing {
	timings := make([]Timing, 0, len(words))

	for i, lw := range words {
		if j, ok := mapping[i]; ok {
			tw := transcript[j]
			timings = append(timings, Timing{
				Word:  lw.Original,
				Start: round2(tw.Start),
				End:   round2(tw.End),
				Line:  lw.Line,
			})
			continue
		}

		prevTime := 0.0
		for p := i - 1; p >= 0; p-- {
			if j, ok := mapping[p]; ok {
				prevTime = transcript[j].End
				break
			}
		}

		var nextTime float64
		haveNext := false
		for n := i + 1; n < len(words); n++ {
			if j, ok := mapping[n]; ok {
				nextTime = transcript[j].Start
				haveNext = true
				break
			}
		}

		est := prevTime + tailStep
		if haveNext {
			est = (prevTime + nextTime) / 2
		}

		timings = append(timings, Timing{
			Word:      lw.Original,
			Start:     round2(est),
			End:       round2(est + estimatedSpan),
			Estimated: true,
			Line:      lw.Line,
		})
	}

	return timings
}

// MatchPercent reports the share of lyrics words that were matched, as a
// truncated integer percentage. Zero words is reported as zero, not a
// division by zero.
func MatchPercent(matched, total int) int {
	if total == 0 {
		return 0
	}
	return 100 * matched / total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
