// Package pipeline runs one end-to-end alignment: load the lyrics, obtain
// the timed transcript (from the cache or the transcriber), match the two
// sequences, and interpolate timings for every lyrics word.
//
// The pipeline is strictly sequential and batch-oriented; the transcriber
// call is the only blocking external operation and is invoked at most once
// per run.
package pipeline
