package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Builder.Categories) != 7 {
		t.Errorf("expected 7 default categories, got %d", len(cfg.Builder.Categories))
	}
	if cfg.Builder.Categories[0].Name != "Item" {
		t.Errorf("expected first category Item, got %s", cfg.Builder.Categories[0].Name)
	}
	if cfg.Builder.FallbackPatchID <= 0 {
		t.Errorf("expected positive fallback patch id, got %d", cfg.Builder.FallbackPatchID)
	}
	if cfg.Builder.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Builder.Concurrency)
	}
	if cfg.Builder.Timeout != 60*time.Second {
		t.Errorf("expected timeout 60s, got %v", cfg.Builder.Timeout)
	}
	if cfg.Browser.DatasetPath != cfg.Builder.Output {
		t.Errorf("expected browser to read builder output %s, got %s", cfg.Builder.Output, cfg.Browser.DatasetPath)
	}
	if cfg.Browser.TextureCacheSize != 2000 {
		t.Errorf("expected texture cache size 2000, got %d", cfg.Browser.TextureCacheSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "patchdata.yaml")

	yamlContent := `
builder:
  source_dir: "/srv/mirror"
  categories:
    - name: Emote
      icon_column: 21
    - name: Mount
      icon_column: 31
  fallback_patch_id: 95
  output: "out/icons.json.zst"
  concurrency: 2
  timeout: 5s

browser:
  page_size: 50

logging:
  level: "debug"
  log_file: "build.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Builder.SourceDir != "/srv/mirror" {
		t.Errorf("expected source dir /srv/mirror, got %s", cfg.Builder.SourceDir)
	}
	if len(cfg.Builder.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cfg.Builder.Categories))
	}
	if cfg.Builder.Categories[1].Name != "Mount" || cfg.Builder.Categories[1].IconColumn != 31 {
		t.Errorf("expected Mount/31, got %+v", cfg.Builder.Categories[1])
	}
	if cfg.Builder.FallbackPatchID != 95 {
		t.Errorf("expected fallback 95, got %d", cfg.Builder.FallbackPatchID)
	}
	if cfg.Builder.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Builder.Timeout)
	}
	if cfg.Browser.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", cfg.Browser.PageSize)
	}
	// Untouched values keep their defaults
	if cfg.Browser.TextureCacheSize != 2000 {
		t.Errorf("expected texture cache size 2000, got %d", cfg.Browser.TextureCacheSize)
	}
	if cfg.Logging.LogFile != "build.log" {
		t.Errorf("expected log file 'build.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
builder:
  concurrency: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "patchdata.yaml")
	if err := os.WriteFile(configPath, []byte("browser:\n  page_size: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find patchdata.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug flag",
			flags: Flags{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "output flag",
			flags: Flags{Output: "x/icons.json.zst"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Builder.Output != "x/icons.json.zst" {
					t.Errorf("expected output x/icons.json.zst, got %s", cfg.Builder.Output)
				}
				if cfg.Browser.DatasetPath != "x/icons.json.zst" {
					t.Errorf("expected dataset path to follow output, got %s", cfg.Browser.DatasetPath)
				}
			},
		},
		{
			name:  "dataset flag wins over output",
			flags: Flags{Output: "built.json", Dataset: "other.json"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Browser.DatasetPath != "other.json" {
					t.Errorf("expected dataset path other.json, got %s", cfg.Browser.DatasetPath)
				}
			},
		},
		{
			name:  "fallback flag",
			flags: Flags{Fallback: 123},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Builder.FallbackPatchID != 123 {
					t.Errorf("expected fallback 123, got %d", cfg.Builder.FallbackPatchID)
				}
			},
		},
		{
			name:  "source dir flag",
			flags: Flags{SourceDir: "/mirror"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Builder.SourceDir != "/mirror" {
					t.Errorf("expected source dir /mirror, got %s", cfg.Builder.SourceDir)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			applyFlags(cfg, tt.flags)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
builder:
  fallback_patch_id: 90
  concurrency: 8
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(Flags{ConfigPath: configPath, Fallback: 110})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Fallback from flag (110), not file (90)
	if cfg.Builder.FallbackPatchID != 110 {
		t.Errorf("expected fallback 110 from flag, got %d", cfg.Builder.FallbackPatchID)
	}
	// Concurrency from file since no flag override
	if cfg.Builder.Concurrency != 8 {
		t.Errorf("expected concurrency 8 from file, got %d", cfg.Builder.Concurrency)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "patchdata.yaml")

	cfg := Default()
	cfg.Builder.FallbackPatchID = 101
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(Flags{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Builder.FallbackPatchID != 101 {
		t.Errorf("expected fallback 101, got %d", loaded.Builder.FallbackPatchID)
	}
	if len(loaded.Builder.Categories) != len(cfg.Builder.Categories) {
		t.Errorf("expected %d categories, got %d", len(cfg.Builder.Categories), len(loaded.Builder.Categories))
	}
}
