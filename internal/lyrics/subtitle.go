package lyrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sidecarMarker is inserted before the lyrics file extension to locate the
// optional subtitle file (lyrics.txt -> lyrics_s.txt).
const sidecarMarker = "_s"

// SidecarPath returns the subtitle sidecar path for a lyrics path.
func SidecarPath(lyricsPath string) string {
	ext := filepath.Ext(lyricsPath)
	base := strings.TrimSuffix(lyricsPath, ext)
	return base + sidecarMarker + ext
}

// LoadSubtitles reads the subtitle sidecar for a lyrics file, one entry per
// line, indexed by the same line numbering as the lyrics words. A missing
// sidecar is not an error and returns nil.
func LoadSubtitles(lyricsPath string) ([]string, error) {
	path := SidecarPath(lyricsPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read subtitles: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	// A trailing newline should not contribute an empty entry.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
