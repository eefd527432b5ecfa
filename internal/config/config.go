package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by LoadLocal and LoadGlobal when no config file
// exists in the searched location.
var ErrNotFound = errors.New("config not found")

// ErrNoConfigDir is returned when neither XDG_CONFIG_HOME nor a home
// directory is available.
var ErrNoConfigDir = errors.New("no config dir")

// LocalNames lists repo-local config file names in search order.
var LocalNames = []string{".fastsecret.yml", ".fastsecret.yaml", "fastsecret.yml", "fastsecret.yaml"}

// FileConfig is the on-disk YAML configuration shape for fastsecret. Unset
// keys stay nil so callers can tell "absent" from a zero value when merging
// with flags, and are omitted when the struct is marshalled.
type FileConfig struct {
	Rules         *string `yaml:"rules,omitempty"`
	IgnoreRules   *string `yaml:"ignore_rules,omitempty"`
	Include       *string `yaml:"include,omitempty"`
	Exclude       *string `yaml:"exclude,omitempty"`
	MaxBytes      *int64  `yaml:"max_bytes,omitempty"`
	NoColor       *bool   `yaml:"no_color,omitempty"`
	ExitOnSecrets *bool   `yaml:"exit_on_secrets,omitempty"`
	FailOn        *string `yaml:"fail_on,omitempty"`
	Verbose       *bool   `yaml:"verbose,omitempty"`
}

// LoadFile reads a YAML config file from the provided path. Unknown keys are
// rejected so typos surface instead of being silently ignored.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .fastsecret.yml/.yaml and fastsecret.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	if p := FindLocal(repoRoot); p != "" {
		return LoadFile(p)
	}
	return FileConfig{}, ErrNotFound
}

// FindLocal returns the first local config file present in repoRoot, or "".
func FindLocal(repoRoot string) string {
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// GlobalPath returns the location of the global config file, honouring
// XDG_CONFIG_HOME and falling back to ~/.config.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", ErrNoConfigDir
	}
	return filepath.Join(base, "fastsecret", "config.yml"), nil
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	p, err := GlobalPath()
	if err != nil {
		return FileConfig{}, err
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// Merge returns fc with every unset key taken from fallback.
func (fc FileConfig) Merge(fallback FileConfig) FileConfig {
	out := fc
	if out.Rules == nil {
		out.Rules = fallback.Rules
	}
	if out.IgnoreRules == nil {
		out.IgnoreRules = fallback.IgnoreRules
	}
	if out.Include == nil {
		out.Include = fallback.Include
	}
	if out.Exclude == nil {
		out.Exclude = fallback.Exclude
	}
	if out.MaxBytes == nil {
		out.MaxBytes = fallback.MaxBytes
	}
	if out.NoColor == nil {
		out.NoColor = fallback.NoColor
	}
	if out.ExitOnSecrets == nil {
		out.ExitOnSecrets = fallback.ExitOnSecrets
	}
	if out.FailOn == nil {
		out.FailOn = fallback.FailOn
	}
	if out.Verbose == nil {
		out.Verbose = fallback.Verbose
	}
	return out
}
