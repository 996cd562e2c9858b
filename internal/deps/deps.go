// Package deps reports the availability of the external tools the
// alignment pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"lyralign/internal/transcribe"
)

// Requirement defines an external binary the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the tools needed for transcription. WhisperX itself
// is fetched by uvx on first use, so only the launcher and its audio
// decoder are checked here.
func Requirements(uvxBinary string) []Requirement {
	uvx := strings.TrimSpace(uvxBinary)
	if uvx == "" {
		uvx = transcribe.UVXCommand
	}
	return []Requirement{
		{
			Name:        "uvx",
			Command:     uvx,
			Description: "Runs WhisperX in an ephemeral environment",
		},
		{
			Name:        "FFmpeg",
			Command:     "ffmpeg",
			Description: "Decodes audio for WhisperX",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Command = resolved
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required tools that are unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
