package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize a built dataset",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}

	patches := idx.Patches()
	fmt.Printf("Dataset:    %s\n", cfg.Browser.DatasetPath)
	fmt.Printf("Generated:  %s (%s)\n", idx.GeneratedAt().Format(time.RFC3339), humanize.Time(idx.GeneratedAt()))
	fmt.Printf("Patches:    %d", len(patches))
	if len(patches) > 0 {
		fmt.Printf(" (%s .. %s)", patches[0].Version, patches[len(patches)-1].Version)
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("Expansions:")
	for _, name := range idx.ExpansionNames() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tICONS")
	for _, name := range idx.Categories() {
		icons := idx.IconSet(name).GetCardinality()
		fmt.Fprintf(tw, "%s\t%s\n", name, humanize.Comma(int64(icons)))
	}
	return tw.Flush()
}
