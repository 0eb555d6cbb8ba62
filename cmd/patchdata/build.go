package main

import (
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/a1hena/IconBrowser/internal/builder"
	"github.com/a1hena/IconBrowser/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch upstream sources and write the dataset",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flags.Output, "out", "", "Output path; a .zst suffix compresses (default from config)")
	buildCmd.Flags().StringVar(&flags.SourceDir, "source-dir", "", "Read sources from a local mirror instead of HTTP")
	buildCmd.Flags().IntVar(&flags.Fallback, "fallback", 0, "Patch id for entities without patch data")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	b := builder.New(cfg.Builder, builder.NewFetcher(cfg.Builder), logger.Named("builder"))

	ds, err := b.Build(ctx)
	if err != nil {
		return err
	}
	if err := b.Emit(ds); err != nil {
		return err
	}

	logger.Sugar.Infof("built %d categories from %d patches in %s",
		ds.Categories.Len(), len(ds.Patches), time.Since(start).Round(time.Millisecond))
	return nil
}
