package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default paths, matching the site layout the generated assets belong to.
const (
	DefaultSourcePath = "static/favicon.svg"
	DefaultOutputDir  = "static"
	DefaultDebounceMS = 500
)

// Config represents the application configuration
type Config struct {
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Watch  WatchConfig  `yaml:"watch"`
	Deploy DeployConfig `yaml:"deploy"`
}

type SourceConfig struct {
	Path string `yaml:"path"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

type DeployConfig struct {
	// Extra directories the generated files are copied into after a run.
	CopyTo []string `yaml:"copy_to"`
	// Optional rsync destination (user@host:path) for the output directory.
	RsyncTarget string `yaml:"rsync_target"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{
		Source: SourceConfig{Path: DefaultSourcePath},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Watch:  WatchConfig{DebounceMS: DefaultDebounceMS},
	}
	cfg.applyEnv()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		Source: SourceConfig{Path: DefaultSourcePath},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Watch:  WatchConfig{DebounceMS: DefaultDebounceMS},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides paths from the environment (either the process
// environment or a .env file loaded by main).
func (c *Config) applyEnv() {
	if v := os.Getenv("FAVIGEN_SOURCE"); v != "" {
		c.Source.Path = v
	}
	if v := os.Getenv("FAVIGEN_OUTPUT"); v != "" {
		c.Output.Dir = v
	}
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return fmt.Errorf("source.path is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}
