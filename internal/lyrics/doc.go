// Package lyrics parses lyrics text into ordered word records and handles
// the optional subtitle sidecar file that accompanies a lyrics file.
//
// Words keep their original surface form alongside a normalized form used
// for comparison against transcribed audio. Normalization is shared with
// the transcript side so matching is case- and punctuation-insensitive.
package lyrics
