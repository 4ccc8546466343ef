package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "ROPEDIFF_"

// LookupFunc reports the value of an environment variable.
// os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// envBinding maps one environment variable onto a setting.
type envBinding struct {
	name string // without prefix
	key  string // dotted setting name for errors
	set  func(c *Config, v string) error
}

var (
	errNotInt  = errors.New("not an integer")
	errNotBool = errors.New("not a boolean")
)

var envBindings = []envBinding{
	{"CHUNK_SIZE", "chunk.size", intSetter(func(c *Config) *int { return &c.Chunk.Size })},
	{"DIFF_MAX_STEPS", "diff.max_steps", intSetter(func(c *Config) *int { return &c.Diff.MaxSteps })},
	{"DIFF_COALESCE", "diff.coalesce", boolSetter(func(c *Config) *bool { return &c.Diff.Coalesce })},
	{"DIFF_VERIFY", "diff.verify", boolSetter(func(c *Config) *bool { return &c.Diff.Verify })},
	{"OUTPUT_FORMAT", "output.format", stringSetter(func(c *Config) *string { return &c.Output.Format })},
	{"OUTPUT_COLOR", "output.color", stringSetter(func(c *Config) *string { return &c.Output.Color })},
	{"OUTPUT_DIGEST_KEY", "output.digest_key", rawSetter(func(c *Config) *string { return &c.Output.DigestKey })},
	{"LOG_LEVEL", "logging.level", stringSetter(func(c *Config) *string { return &c.Logging.Level })},
	{"LOG_FORMAT", "logging.format", stringSetter(func(c *Config) *string { return &c.Logging.Format })},
	{"DEBUG", "logging.level", func(c *Config, v string) error {
		debug, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errNotBool
		}
		if debug {
			c.Logging.Level = "debug"
		}
		return nil
	}},
	{"WATCH_DEBOUNCE_MS", "watch.debounce_ms", intSetter(func(c *Config) *int { return &c.Watch.DebounceMS })},
}

// ApplyEnv overrides settings from environment variables. A nil lookup
// reads the process environment. Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		if err := b.set(c, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, &ValidationError{
				Key:     b.key,
				Value:   strconv.Quote(v),
				Message: err.Error(),
			})
		}
	}
	return nil
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errNotInt
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errNotBool
		}
		*field(c) = b
		return nil
	}
}

func stringSetter(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = strings.ToLower(strings.TrimSpace(v))
		return nil
	}
}

func rawSetter(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}
