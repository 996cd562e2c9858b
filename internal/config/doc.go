// Package config loads, normalizes, and validates lyralign configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Obtain settings through this package so
// downstream code receives sanitized paths, canonical selector values, and
// clear validation errors.
package config
