// Package config handles builder and browser configuration loading.
package config

import "time"

// Config holds all settings.
type Config struct {
	Builder BuilderConfig `yaml:"builder"`
	Browser BrowserConfig `yaml:"browser"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuilderConfig holds dataset builder settings.
type BuilderConfig struct {
	// Source URL templates. {name} is replaced by the category name.
	PatchListURL string `yaml:"patch_list_url"`
	PatchMapURL  string `yaml:"patch_map_url"`
	TableURL     string `yaml:"table_url"`

	// SourceDir, when set, reads sources from a local mirror instead of HTTP.
	// Files are looked up by the base name of each URL.
	SourceDir string `yaml:"source_dir"`

	Categories []CategoryConfig `yaml:"categories"`

	// FallbackPatchID is attributed to entities missing from a category's
	// patch mapping. Zero derives it from the highest known patch id.
	FallbackPatchID int `yaml:"fallback_patch_id"`

	Output       string        `yaml:"output"`        // .zst suffix compresses
	PrettyOutput string        `yaml:"pretty_output"` // Optional, empty disables
	Concurrency  int           `yaml:"concurrency"`
	Timeout      time.Duration `yaml:"timeout"`
}

// CategoryConfig locates the icon column of one source table.
type CategoryConfig struct {
	Name       string `yaml:"name"`
	IconColumn int    `yaml:"icon_column"` // Field index, the id is field 0
}

// BrowserConfig holds icon browser settings.
type BrowserConfig struct {
	DatasetPath      string `yaml:"dataset_path"`
	TextureCacheSize int    `yaml:"texture_cache_size"`
	EvictBatch       int    `yaml:"evict_batch"`
	PageSize         int    `yaml:"page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Builder: BuilderConfig{
			PatchListURL: "https://raw.githubusercontent.com/xivapi/ffxiv-datamining-patches/master/patchlist.json",
			PatchMapURL:  "https://raw.githubusercontent.com/xivapi/ffxiv-datamining-patches/master/patchdata/{name}.json",
			TableURL:     "https://raw.githubusercontent.com/xivapi/ffxiv-datamining/master/csv/{name}.csv",
			Categories: []CategoryConfig{
				{Name: "Item", IconColumn: 11},
				{Name: "Action", IconColumn: 3},
				{Name: "Status", IconColumn: 3},
				{Name: "Mount", IconColumn: 31},
				{Name: "Companion", IconColumn: 27},
				{Name: "Emote", IconColumn: 21},
				{Name: "Achievement", IconColumn: 11},
			},
			FallbackPatchID: 100,
			Output:          "data/icon_patches.json",
			PrettyOutput:    "data/icon_patches.pretty.json",
			Concurrency:     4,
			Timeout:         60 * time.Second,
		},
		Browser: BrowserConfig{
			DatasetPath:      "data/icon_patches.json",
			TextureCacheSize: 2000,
			EvictBatch:       500,
			PageSize:         100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
