// Package config loads and describes mdrx's own configuration file
// (.mdrx.yml): prompt marker overrides, per-kind severities, file
// include/exclude globs, and watch-mode settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jackchuka/mdrx/internal/prompt"
)

// FileName is the conventional configuration file name discovered by Find.
const FileName = ".mdrx.yml"

// Markers overrides the default prompt marker notation.
type Markers struct {
	Mandatory string `yaml:"mandatory" lc:"marker that makes a paragraph's whole block mandatory-wildcard" comment:"marker that makes a paragraph's whole block mandatory-wildcard"`
	Optional  string `yaml:"optional" lc:"marker that makes a paragraph's whole block optional" comment:"marker that makes a paragraph's whole block optional"`
	Repeat    string `yaml:"repeat" lc:"repeat marker notation; not read, the repeat marker is always the default" comment:"repeat marker notation; not read, the repeat marker is always the default"`
}

// Watch configures the fsnotify-driven watch loop.
type Watch struct {
	DebounceMS int `yaml:"debounce_ms" lc:"minimum milliseconds between re-checks after a file change" comment:"minimum milliseconds between re-checks after a file change"`
}

// Config is the full shape of .mdrx.yml.
type Config struct {
	Prescriptions []string   `yaml:"prescriptions" hc:"prescription files; check uses the first one when --prescription is not given"`
	Include       []string   `yaml:"include" hc:"glob patterns of documents; not read, check takes its globs as arguments"`
	Exclude       []string   `yaml:"exclude" hc:"glob patterns to skip; not read, check takes its globs as arguments"`
	Markers       Markers    `yaml:"markers" hc:"prompt marker notation"`
	Severities    Severities `yaml:"severities" hc:"per-kind diagnostic severities"`
	Watch         Watch      `yaml:"watch" hc:"watch-mode settings"`
}

// EffectiveSeverities resolves the configured severities against the
// built-in defaults, so a partially-specified severities block (or the
// scalar shorthand) always yields a value for every diagnostic kind.
func (c *Config) EffectiveSeverities() Severities {
	return c.Severities.Resolve(Default().Severities)
}

// PromptMarkers converts the configured marker strings into prompt.Markers,
// falling back to prompt.DefaultMarkers for any unset field.
func (c *Config) PromptMarkers() prompt.Markers {
	m := prompt.DefaultMarkers
	if c.Markers.Mandatory != "" {
		m.Mandatory = c.Markers.Mandatory
	}
	if c.Markers.Optional != "" {
		m.Optional = c.Markers.Optional
	}
	return m
}

// Default returns the configuration used when no .mdrx.yml is found.
func Default() *Config {
	return &Config{
		Include: []string{"**/*.md"},
		Markers: Markers{
			Mandatory: prompt.DefaultMarkers.Mandatory,
			Optional:  prompt.DefaultMarkers.Optional,
			Repeat:    `-""-`,
		},
		Severities: Severities{
			MissingMandatory: "error",
			ContentMismatch:  "error",
			SuperfluousNode:  "error",
		},
		Watch: Watch{DebounceMS: 300},
	}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// Find discovers a .mdrx.yml file by walking up from startPath.
func Find(startPath string) (string, error) {
	dir := startPath
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s found in directory hierarchy", FileName)
}
