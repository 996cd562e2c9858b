// Package transcribe invokes WhisperX for word-level speech transcription.
//
// The transcriber is treated as a black box: given an audio file, a model
// selector, and an optional vocabulary hint, it returns the ordered word
// sequence with start/end times that WhisperX reported. The process is
// launched through uvx so no local Python environment management is
// required. A custom command runner can be injected for tests.
package transcribe
