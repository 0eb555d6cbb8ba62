package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a1hena/IconBrowser/internal/browser"
	"github.com/a1hena/IconBrowser/pkg/iconindex"
	"github.com/a1hena/IconBrowser/pkg/patchdata"
)

var flagCategory string

var lookupCmd = &cobra.Command{
	Use:   "lookup <icon-id>...",
	Short: "Show the patch that introduced each icon",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

var rangesCmd = &cobra.Command{
	Use:   "ranges <patch-id|version>",
	Short: "List the icon ranges a patch introduced",
	Args:  cobra.ExactArgs(1),
	RunE:  runRanges,
}

func init() {
	lookupCmd.Flags().StringVar(&flagCategory, "category", "", "Restrict to one category")
	rangesCmd.Flags().StringVar(&flagCategory, "category", "", "Restrict to one category")
	rootCmd.AddCommand(lookupCmd, rangesCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ICON\tCATEGORY\tPATCH\tVERSION\tPATH")
	for _, arg := range args {
		icon, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid icon id %q", arg)
		}

		category := flagCategory
		var patchID int
		var ok bool
		if category != "" {
			patchID, ok = idx.CategoryIconPatchID(category, icon)
		} else {
			category, patchID, ok = idx.LocateIcon(icon)
		}
		if !ok {
			fmt.Fprintf(tw, "%d\t-\t-\t-\t%s\n", icon, browser.IconPath(icon, false))
			continue
		}

		version := "?"
		if p, found := idx.FindPatch(patchID); found {
			version = p.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", icon, category, patchID, version, browser.IconPath(icon, false))
	}
	return tw.Flush()
}

func runRanges(cmd *cobra.Command, args []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}

	patch, err := resolvePatch(idx, args[0])
	if err != nil {
		return err
	}

	var ranges []patchdata.CategoryRange
	if flagCategory != "" {
		for _, r := range idx.IconRangesForPatch(flagCategory, patch.ID) {
			ranges = append(ranges, patchdata.CategoryRange{Category: flagCategory, Range: r})
		}
	} else {
		ranges = idx.AllIconRangesForPatch(patch.ID)
	}

	fmt.Printf("Patch %d: %s\n\n", patch.ID, patch)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSTART\tEND\tCOUNT")
	total := 0
	for _, r := range ranges {
		n := r.End - r.Start + 1
		total += n
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", r.Category, r.Start, r.End, n)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\n(%d ranges, %d icons)\n", len(ranges), total)
	return nil
}

// resolvePatch accepts a version string or a numeric patch id, trying the
// version first.
func resolvePatch(idx *iconindex.Index, arg string) (patchdata.Patch, error) {
	if p, ok := idx.FindPatchByVersion(arg); ok {
		return p, nil
	}
	if id, err := strconv.Atoi(arg); err == nil {
		if p, ok := idx.FindPatch(id); ok {
			return p, nil
		}
	}
	return patchdata.Patch{}, fmt.Errorf("unknown patch %q", arg)
}
