package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the effective configuration to a YAML file",
	Long: `init-config writes the configuration currently in effect (defaults merged
with any config file and flags) so it can be edited. Without a path it writes
./patchdata.yaml, the first location patchdata looks in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "patchdata.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}
