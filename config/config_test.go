package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Create temp config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "favigen.yaml")

	configContent := `
source:
  path: "assets/logo.svg"

output:
  dir: "site/static"

watch:
  enabled: true
  debounce_ms: 250

deploy:
  copy_to:
    - "site/public"
    - "mirror/static"
  rsync_target: "user@host.com:/var/www/static"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	// Load config
	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Validate fields
	if cfg.Source.Path != "assets/logo.svg" {
		t.Errorf("Expected source path 'assets/logo.svg', got '%s'", cfg.Source.Path)
	}

	if cfg.Output.Dir != "site/static" {
		t.Errorf("Expected output dir 'site/static', got '%s'", cfg.Output.Dir)
	}

	if !cfg.Watch.Enabled {
		t.Error("Expected watch to be enabled")
	}

	if cfg.Watch.DebounceMS != 250 {
		t.Errorf("Expected debounce 250, got %d", cfg.Watch.DebounceMS)
	}

	if len(cfg.Deploy.CopyTo) != 2 {
		t.Errorf("Expected 2 copy destinations, got %d", len(cfg.Deploy.CopyTo))
	}

	if cfg.Deploy.RsyncTarget != "user@host.com:/var/www/static" {
		t.Errorf("Expected rsync target 'user@host.com:/var/www/static', got '%s'", cfg.Deploy.RsyncTarget)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// Fields left out of the file keep their defaults
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "favigen.yaml")

	configContent := `
watch:
  enabled: true
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.Path != DefaultSourcePath {
		t.Errorf("Expected default source path '%s', got '%s'", DefaultSourcePath, cfg.Source.Path)
	}

	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("Expected default output dir '%s', got '%s'", DefaultOutputDir, cfg.Output.Dir)
	}

	if cfg.Watch.DebounceMS != DefaultDebounceMS {
		t.Errorf("Expected default debounce %d, got %d", DefaultDebounceMS, cfg.Watch.DebounceMS)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Source.Path != "static/favicon.svg" {
		t.Errorf("Expected source path 'static/favicon.svg', got '%s'", cfg.Source.Path)
	}

	if cfg.Output.Dir != "static" {
		t.Errorf("Expected output dir 'static', got '%s'", cfg.Output.Dir)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FAVIGEN_SOURCE", "icons/source.svg")
	t.Setenv("FAVIGEN_OUTPUT", "icons/out")

	cfg := Default()

	if cfg.Source.Path != "icons/source.svg" {
		t.Errorf("Expected env source path 'icons/source.svg', got '%s'", cfg.Source.Path)
	}

	if cfg.Output.Dir != "icons/out" {
		t.Errorf("Expected env output dir 'icons/out', got '%s'", cfg.Output.Dir)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Source: SourceConfig{Path: "static/favicon.svg"},
				Output: OutputConfig{Dir: "static"},
			},
			wantErr: false,
		},
		{
			name: "missing source path",
			config: Config{
				Output: OutputConfig{Dir: "static"},
			},
			wantErr: true,
		},
		{
			name: "missing output dir",
			config: Config{
				Source: SourceConfig{Path: "static/favicon.svg"},
			},
			wantErr: true,
		},
		{
			name: "negative debounce",
			config: Config{
				Source: SourceConfig{Path: "static/favicon.svg"},
				Output: OutputConfig{Dir: "static"},
				Watch:  WatchConfig{DebounceMS: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
