package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "ffmpeg-english"

// File is the optional on-disk configuration. Flags and environment
// variables take precedence over it.
type File struct {
	BaseURL      string   `yaml:"base_url"`
	AllowedHosts []string `yaml:"allowed_hosts"`
	Shell        string   `yaml:"shell"`
	Timeout      string   `yaml:"timeout"`
	Confirm      bool     `yaml:"confirm"`
}

// DefaultPath returns the per-user config location, or "" when the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load reads and parses the configuration from the specified YAML file.
// Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if _, err := f.TimeoutDuration(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &f, nil
}

// LoadOptional is Load, except that a missing file yields an empty config
// unless the path was given explicitly.
func LoadOptional(path string, explicit bool) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	f, err := Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	return f, err
}

func (f *File) TimeoutDuration() (time.Duration, error) {
	if f == nil || f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
	}
	return d, nil
}
