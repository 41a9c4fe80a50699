// Package config loads the optional bugport settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ALT-F4-LLC/bugport/internal/lookup"
)

// EnvVar names the environment variable consulted when no --config flag is
// given.
const EnvVar = "BUGPORT_CONFIG"

// Settings are the values a config file may provide. Each one has a
// matching convert flag that overrides it.
type Settings struct {
	AttachmentsDir    string `yaml:"attachments_dir"`
	DefaultUser       string `yaml:"default_user"`
	UserMapping       string `yaml:"user_mapping"`
	AttachmentMapping string `yaml:"attachment_mapping"`
	Notes             string `yaml:"notes"`
	Timezone          string `yaml:"timezone"`
	Catalog           string `yaml:"catalog"`
}

// Config holds resolved settings and where they came from.
type Config struct {
	Path      string // config file path, empty when none was used
	EnvVarSet bool   // whether BUGPORT_CONFIG supplied the path
	Settings
}

// Resolve picks the config file from flagPath, then BUGPORT_CONFIG, and
// loads it. With neither set it returns an empty Config.
func Resolve(flagPath string) (*Config, error) {
	cfg := &Config{Path: flagPath}
	if cfg.Path == "" {
		if envPath := os.Getenv(EnvVar); envPath != "" {
			cfg.Path = envPath
			cfg.EnvVarSet = true
		}
	}
	if cfg.Path == "" {
		return cfg, nil
	}

	s, err := Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	cfg.Settings = *s
	return cfg, nil
}

// Load reads and validates a config file. Relative paths inside it are
// resolved against the file's directory.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &lookup.FileError{Path: path, Err: err}
	}

	var s Settings
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField()); err != nil {
		return nil, &lookup.FileError{Path: path, Err: fmt.Errorf("parsing config: %w", err)}
	}

	if _, err := s.Location(); err != nil {
		return nil, &lookup.FileError{Path: path, Err: err}
	}

	s.resolvePaths(filepath.Dir(path))
	return &s, nil
}

func (s *Settings) resolvePaths(base string) {
	for _, p := range []*string{
		&s.AttachmentsDir,
		&s.UserMapping,
		&s.AttachmentMapping,
		&s.Notes,
		&s.Catalog,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Location returns the time zone timestamps are rendered in. An empty
// timezone means local time.
func (s *Settings) Location() (*time.Location, error) {
	return ParseLocation(s.Timezone)
}

// ParseLocation loads a named IANA zone such as "Europe/Berlin". "" and
// "Local" mean local time.
func ParseLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
