// Package config loads the optional .jarlang.yml file that supplies defaults
// for the jarlang command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/podhmo/jarlang/fs"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the name searched for by Find.
const FileName = ".jarlang.yml"

// ErrNotFound is returned by Find when no config file exists in or above the start directory.
var ErrNotFound = errors.New("config file not found")

// Config is the decoded form of a config file.
type Config struct {
	// Path is the file the config was loaded from, empty for Default.
	Path string `yaml:"-"`

	Requires string `yaml:"requires"`
	Strict   bool   `yaml:"strict"`
	LogLevel string `yaml:"log_level"`
	Jobs     int    `yaml:"jobs"`
	REPL     REPL   `yaml:"repl"`
}

// REPL holds the interactive session settings.
type REPL struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the settings used when no config file is present.
// History is left empty; the command fills it from the home directory.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Jobs:     4,
		REPL:     REPL{Prompt: "> "},
	}
}

// Load decodes the file at path. Fields missing from the file keep their
// Default values, and an empty file yields Default.
func Load(fsys fs.FS, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	errs := ValidationError{Path: c.Path}
	if c.Requires != "" && !semver.IsValid(c.Requires) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("requires %q is not a semantic version", c.Requires))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.Jobs < 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("jobs must be positive, got %d", c.Jobs))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Check reports an error if the config requires a newer interpreter than running.
func (c *Config) Check(running string) error {
	if c.Requires == "" {
		return nil
	}
	if !semver.IsValid(c.Requires) {
		return fmt.Errorf("config: requires %q is not a semantic version", c.Requires)
	}
	if semver.Compare(c.Requires, running) > 0 {
		return fmt.Errorf("requires jarlang >= %s, running %s", c.Requires, running)
	}
	return nil
}

// Find walks from dir toward the filesystem root and returns the path of the
// first config file it meets.
func Find(fsys fs.FS, dir string) (string, error) {
	current := filepath.Clean(dir)
	for {
		path := filepath.Join(current, FileName)
		if fi, err := fsys.Stat(path); err == nil && !fi.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w in or above %s", ErrNotFound, dir)
		}
		current = parent
	}
}
