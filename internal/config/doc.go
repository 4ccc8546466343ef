// Package config provides configuration for the ropediff command.
//
// Configuration is layered. Each layer overrides the one before it:
//
//  1. Built-in defaults (see Default)
//  2. A TOML file, either the path given to Load or ropediff.toml in the
//     user configuration directory
//  3. Environment variables prefixed with ROPEDIFF_
//
// Command-line flags are applied by the caller on top of the result.
//
// # File Format
//
//	[chunk]
//	size = 192
//
//	[diff]
//	max_steps = 50000000
//	coalesce = true
//	verify = false
//
//	[output]
//	format = "text"   # text, json, yaml or cbor
//	color = "auto"    # auto, always or never
//	digest_key = ""
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[watch]
//	debounce_ms = 100
//
// Unknown keys are rejected so that typos surface as errors instead of
// being silently ignored.
//
// # Environment Variables
//
//	ROPEDIFF_CHUNK_SIZE         chunk.size
//	ROPEDIFF_DIFF_MAX_STEPS     diff.max_steps
//	ROPEDIFF_DIFF_COALESCE      diff.coalesce
//	ROPEDIFF_DIFF_VERIFY        diff.verify
//	ROPEDIFF_OUTPUT_FORMAT      output.format
//	ROPEDIFF_OUTPUT_COLOR       output.color
//	ROPEDIFF_OUTPUT_DIGEST_KEY  output.digest_key
//	ROPEDIFF_LOG_LEVEL          logging.level
//	ROPEDIFF_LOG_FORMAT         logging.format
//	ROPEDIFF_DEBUG              sets logging.level to debug when true
//	ROPEDIFF_WATCH_DEBOUNCE_MS  watch.debounce_ms
package config
