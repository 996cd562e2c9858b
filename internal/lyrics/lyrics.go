package lyrics

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// wordPattern matches maximal runs of word characters and apostrophes.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_']+`)

// stripPattern matches everything Normalize removes.
var stripPattern = regexp.MustCompile(`[^\p{L}\p{N}_']`)

// Word is a single lyrics token in document order.
type Word struct {
	// Original is the surface form as it appeared in the lyrics file.
	Original string
	// Clean is the normalized form used for matching.
	Clean string
	// Line is the zero-based source line index.
	Line int
}

// Normalize lowercases a word and strips every character that is not a
// letter, digit, underscore, or apostrophe. Idempotent.
func Normalize(word string) string {
	return stripPattern.ReplaceAllString(strings.ToLower(word), "")
}

// Parse splits lyrics text into ordered Word records, line by line.
// Lines with no word characters contribute nothing.
func Parse(text string) []Word {
	var words []Word
	for lineNum, line := range strings.Split(text, "\n") {
		for _, match := range wordPattern.FindAllString(line, -1) {
			words = append(words, Word{
				Original: match,
				Clean:    Normalize(match),
				Line:     lineNum,
			})
		}
	}
	return words
}

// Load reads a lyrics file and returns its words plus the raw text.
// The raw text is kept so callers can pass it to the transcriber as a
// vocabulary hint.
func Load(path string) ([]Word, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read lyrics: %w", err)
	}
	text := string(data)
	return Parse(text), text, nil
}

// CleanTokens returns the normalized token sequence for matching.
func CleanTokens(words []Word) []string {
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = w.Clean
	}
	return tokens
}
