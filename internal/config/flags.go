package config

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Output     string
	SourceDir  string
	Fallback   int
	Dataset    string
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f Flags) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Output != "" {
		cfg.Builder.Output = f.Output
		// Keep the dataset the browser reads in step with what was just built.
		cfg.Browser.DatasetPath = f.Output
	}
	if f.SourceDir != "" {
		cfg.Builder.SourceDir = f.SourceDir
	}
	if f.Fallback > 0 {
		cfg.Builder.FallbackPatchID = f.Fallback
	}
	if f.Dataset != "" {
		cfg.Browser.DatasetPath = f.Dataset
	}
}
