package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"lyralign/internal/align"
)

// ReactiveWord is one styled word entry inside a reactive line. Time is the
// delta in seconds from the previous word's start.
type ReactiveWord struct {
	Font  string  `json:"font"`
	Color string  `json:"color"`
	Time  float64 `json:"time"`
	Text  string  `json:"text"`
}

// ReactiveLine is one line record of the reactive export. Text holds the
// JSON-encoded word entry array as a string, an integration convenience for
// the downstream consumer.
type ReactiveLine struct {
	Text     string  `json:"text"`
	IsJSON   bool    `json:"isJson"`
	Locked   bool    `json:"locked"`
	Seconds  float64 `json:"seconds"`
	Subtitle string  `json:"subtitle,omitempty"`
}

// renderReactive groups timings by line in ascending line order. Each line
// starts at its first word's start; each word records the delta from the
// previous word's start, so the first word's delta is always zero.
func renderReactive(timings []align.Timing, opts Options) ([]ReactiveLine, error) {
	font := opts.Font
	if font == "" {
		font = DefaultFont
	}
	color := opts.Color
	if color == "" {
		color = DefaultColor
	}

	byLine := make(map[int][]align.Timing)
	for _, timing := range timings {
		byLine[timing.Line] = append(byLine[timing.Line], timing)
	}

	lineNumbers := make([]int, 0, len(byLine))
	for line := range byLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)

	result := make([]ReactiveLine, 0, len(lineNumbers))
	for _, line := range lineNumbers {
		words := byLine[line]
		lineStart := words[0].Start

		entries := make([]ReactiveWord, 0, len(words))
		prevStart := lineStart
		for _, word := range words {
			entries = append(entries, ReactiveWord{
				Font:  font,
				Color: color,
				Time:  round2(word.Start - prevStart),
				Text:  strings.ToUpper(word.Word),
			})
			prevStart = word.Start
		}

		text, err := encodeWords(entries)
		if err != nil {
			return nil, fmt.Errorf("encode line %d: %w", line, err)
		}

		record := ReactiveLine{
			Text:    text,
			IsJSON:  true,
			Locked:  true,
			Seconds: lineStart,
		}
		if line < len(opts.Subtitles) {
			record.Subtitle = strings.ToUpper(opts.Subtitles[line])
		}
		result = append(result, record)
	}

	return result, nil
}

// encodeWords serializes the word array without HTML escaping, matching the
// artifact's UTF-8 passthrough elsewhere.
func encodeWords(entries []ReactiveWord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
