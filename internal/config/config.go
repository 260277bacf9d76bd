// Package config loads and validates steergen configuration. Settings come
// from .steergen.yaml, may be overridden by STEERGEN_* environment
// variables, and are finally overridden by CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"steergen/internal/steering"
)

// DefaultFileName is the config file looked up in the project root.
const DefaultFileName = ".steergen.yaml"

// Config holds all steergen configuration.
type Config struct {
	// ProjectRoot is the directory scanned by detection and analysis.
	ProjectRoot string `yaml:"project_root"`

	// Target selects the assistant layout the bundle is written for.
	Target string `yaml:"target"`

	// OutputDir is the directory bundle paths are joined under.
	OutputDir string `yaml:"output_dir"`

	// Framework pins detection to an explicit framework id. Empty means
	// auto-detect.
	Framework string `yaml:"framework"`

	Analysis AnalysisConfig `yaml:"analysis"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig bounds the project scans.
type AnalysisConfig struct {
	MaxFiles       int `yaml:"max_files"`
	ComponentLimit int `yaml:"component_limit"`
	SnippetLimit   int `yaml:"snippet_limit"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last file event before a
	// regeneration run fires.
	Debounce string `yaml:"debounce"`

	// Paths lists extra roots to watch beyond the conventional ones.
	Paths []string `yaml:"paths"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProjectRoot: ".",
		Target:      string(steering.TargetKiro),
		OutputDir:   ".",
		Framework:   "",

		Analysis: AnalysisConfig{
			MaxFiles:       2000,
			ComponentLimit: 50,
			SnippetLimit:   3,
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if target := os.Getenv("STEERGEN_TARGET"); target != "" {
		c.Target = target
	}
	if dir := os.Getenv("STEERGEN_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if fw := os.Getenv("STEERGEN_FRAMEWORK"); fw != "" {
		c.Framework = fw
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Target != "" && !steering.ValidTarget(steering.Target(c.Target)) {
		return fmt.Errorf("invalid target: %s (valid: %v)", c.Target, steering.Targets())
	}

	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
		}
	}

	if c.Analysis.MaxFiles < 0 {
		return fmt.Errorf("analysis max_files must not be negative: %d", c.Analysis.MaxFiles)
	}

	return nil
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// AnalysisOptions converts the analysis section into scan options, applying
// defaults for unset limits.
func (c *Config) AnalysisOptions() (maxFiles, componentLimit, snippetLimit int) {
	defaults := DefaultConfig().Analysis
	maxFiles = c.Analysis.MaxFiles
	if maxFiles == 0 {
		maxFiles = defaults.MaxFiles
	}
	componentLimit = c.Analysis.ComponentLimit
	if componentLimit == 0 {
		componentLimit = defaults.ComponentLimit
	}
	snippetLimit = c.Analysis.SnippetLimit
	if snippetLimit == 0 {
		snippetLimit = defaults.SnippetLimit
	}
	return maxFiles, componentLimit, snippetLimit
}
