package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/ropekit/internal/engine/diff"
	"github.com/dshills/ropekit/internal/engine/rope"
)

// Output formats accepted by [OutputConfig.Format].
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Colour modes accepted by [OutputConfig.Color].
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	outputFormats = []string{FormatText, FormatJSON, FormatYAML, FormatCBOR}
	colorModes    = []string{ColorAuto, ColorAlways, ColorNever}
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
)

// Config holds all ropediff settings.
type Config struct {
	Chunk   ChunkConfig   `toml:"chunk"`
	Diff    DiffConfig    `toml:"diff"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
	Watch   WatchConfig   `toml:"watch"`
}

// ChunkConfig controls how input text is split into chunks.
type ChunkConfig struct {
	// Size is the target chunk size in bytes.
	Size int `toml:"size" comment:"target chunk size in bytes (4-255)"`
}

// DiffConfig controls the diff algorithm.
type DiffConfig struct {
	// MaxSteps bounds the work of a single diff. Negative means unbounded.
	MaxSteps int  `toml:"max_steps" comment:"work budget per diff; negative disables the limit"`
	Coalesce bool `toml:"coalesce" comment:"merge adjacent changes into one delete and one insert"`
	Verify   bool `toml:"verify" comment:"replay every edit script and check the result"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format    string `toml:"format" comment:"text, json, yaml or cbor"`
	Color     string `toml:"color" comment:"auto, always or never"`
	DigestKey string `toml:"digest_key" comment:"optional key material for input digests"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `toml:"level" comment:"debug, info, warn or error"`
	Format string `toml:"format" comment:"text or json"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms" comment:"quiet period before re-diffing, in milliseconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chunk: ChunkConfig{Size: rope.TargetChunkSize},
		Diff: DiffConfig{
			MaxSteps: diff.DefaultMaxSteps,
			Coalesce: true,
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{DebounceMS: 100},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Chunk.Size < rope.MinChunkSize || c.Chunk.Size > rope.MaxChunkSize {
		errs = append(errs, &ValidationError{
			Key:     "chunk.size",
			Value:   c.Chunk.Size,
			Message: fmt.Sprintf("must be between %d and %d", rope.MinChunkSize, rope.MaxChunkSize),
		})
	}
	errs = appendOneOf(errs, "output.format", c.Output.Format, outputFormats)
	errs = appendOneOf(errs, "output.color", c.Output.Color, colorModes)
	errs = appendOneOf(errs, "logging.level", c.Logging.Level, logLevels)
	errs = appendOneOf(errs, "logging.format", c.Logging.Format, logFormats)
	if c.Watch.DebounceMS < 0 {
		errs = append(errs, &ValidationError{
			Key:     "watch.debounce_ms",
			Value:   c.Watch.DebounceMS,
			Message: "must not be negative",
		})
	}
	return errors.Join(errs...)
}

func appendOneOf(errs []error, key, value string, allowed []string) []error {
	if slices.Contains(allowed, value) {
		return errs
	}
	return append(errs, &ValidationError{
		Key:     key,
		Value:   fmt.Sprintf("%q", value),
		Message: "must be one of " + strings.Join(allowed, ", "),
	})
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Debounce returns the watch-mode quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
