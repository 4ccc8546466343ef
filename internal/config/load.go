package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the user config directory.
const FileName = "ropediff.toml"

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader builds a Config from defaults, a TOML file and the environment.
type Loader struct {
	fs     FileSystem
	lookup LookupFunc
	dir    func() (string, error)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the file system configuration files are read from.
func WithFileSystem(fsys FileSystem) LoaderOption {
	return func(l *Loader) {
		if fsys != nil {
			l.fs = fsys
		}
	}
}

// WithLookup sets the environment lookup function.
func WithLookup(lookup LookupFunc) LoaderOption {
	return func(l *Loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// WithConfigDir sets the function that locates the default config
// directory. It defaults to os.UserConfigDir.
func WithConfigDir(dir func() (string, error)) LoaderOption {
	return func(l *Loader) {
		if dir != nil {
			l.dir = dir
		}
	}
}

// NewLoader creates a Loader reading from the OS.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:     OSFS{},
		lookup: os.LookupEnv,
		dir:    os.UserConfigDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configuration using the OS file system and environment.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Load builds the configuration. An explicit path must exist. With an
// empty path the default file is used if present.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if err := l.loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(l.lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		dir, err := l.dir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "ropediff", FileName)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	return decode(cfg, path, data)
}

// decode parses TOML data over cfg. Keys absent from data keep their
// current values.
func decode(cfg *Config, path string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		first := &serr.Errors[0]
		perr.Line, perr.Column = first.Position()
		if key := first.Key(); len(key) > 0 {
			perr.Message = "unknown key " + strings.Join(key, ".")
		} else {
			perr.Message = serr.String()
		}
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
	}
	return perr
}
