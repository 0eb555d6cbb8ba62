package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a1hena/IconBrowser/internal/config"
	"github.com/a1hena/IconBrowser/internal/logger"
	"github.com/a1hena/IconBrowser/pkg/iconindex"
)

var (
	flags config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "patchdata",
	Short: "Build and query the icon patch dataset",
	Long: `patchdata builds the dataset that attributes every game icon id to the
patch that introduced it, and answers lookups against a built dataset.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "Path to config file")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	pf.StringVar(&flags.LogFile, "log-file", "", "Also log to this file (rotated)")
	pf.StringVar(&flags.Dataset, "dataset", "", "Dataset to query (default from config)")
}

// setup loads configuration and initializes logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("config loaded", zap.String("dataset", cfg.Browser.DatasetPath))
	return nil
}

// openIndex loads the configured dataset. The index itself never fails, so
// the load error is checked here to give the operator a useful message.
func openIndex() (*iconindex.Index, error) {
	idx := iconindex.New(cfg.Browser.DatasetPath)
	if err := idx.Err(); err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", cfg.Browser.DatasetPath, err)
	}
	return idx, nil
}
