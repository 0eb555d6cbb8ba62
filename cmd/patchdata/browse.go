package main

import (
	"fmt"
	"image"
	_ "image/png" // PNG decoder registration
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a1hena/IconBrowser/internal/browser"
	"github.com/a1hena/IconBrowser/internal/iconcache"
)

var (
	flagBrowseCategory  string
	flagBrowseExpansion int
	flagBrowsePatch     string
	flagBrowseSearch    int
	flagBrowsePage      int
	flagBrowseIconsDir  string
	flagBrowseHiRes     bool
	flagBrowseChoices   bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List icons matching a filter, one page at a time",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&flagBrowseCategory, "category", browser.AllCategories, "Category (default all)")
	f.IntVar(&flagBrowseExpansion, "expansion", browser.AnyExpansion, "Expansion id (default any)")
	f.StringVar(&flagBrowsePatch, "patch", "", "Patch id or version (default any)")
	f.IntVar(&flagBrowseSearch, "search", browser.NoSearch, "Show only this icon id")
	f.IntVar(&flagBrowsePage, "page", 0, "Page to show, counting from zero")
	f.StringVar(&flagBrowseIconsDir, "icons-dir", "", "Directory of exported icon PNGs laid out like the game paths")
	f.BoolVar(&flagBrowseHiRes, "hires", false, "Look up high resolution icons")
	f.BoolVar(&flagBrowseChoices, "choices", false, "List the filter choices instead of icons")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}

	var textures *iconcache.Cache
	if flagBrowseIconsDir != "" {
		textures = iconcache.New(pngDirProvider{root: flagBrowseIconsDir},
			cfg.Browser.TextureCacheSize, cfg.Browser.EvictBatch)
	}

	b := browser.New(idx, textures, cfg.Browser.PageSize)
	b.SetCategory(flagBrowseCategory)
	b.SetExpansion(flagBrowseExpansion)
	if flagBrowsePatch != "" {
		p, err := resolvePatch(idx, flagBrowsePatch)
		if err != nil {
			return err
		}
		b.SetPatch(p.ID)
	}
	b.SetSearch(flagBrowseSearch)

	if flagBrowseChoices {
		return printChoices(os.Stdout, b)
	}

	page := b.Page(flagBrowsePage)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ICON\tCATEGORY\tVERSION\tEXPANSION\tSIZE\tPATH")
	for _, icon := range page {
		info, _ := b.Describe(icon)
		size := "-"
		if tex, ok := b.Texture(icon, flagBrowseHiRes); ok {
			w, h := tex.Size()
			size = fmt.Sprintf("%dx%d", w, h)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			icon, info.Category, info.Version, info.ExpansionName, size, browser.IconPath(icon, flagBrowseHiRes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n(page %d of %d, %d icons)\n", flagBrowsePage, b.PageCount(), len(b.Visible()))
	return nil
}

// printChoices lists the categories, expansions and the patches selectable
// under the current expansion filter.
func printChoices(w io.Writer, b *browser.Browser) error {
	fmt.Fprintf(w, "Categories: %s\n", strings.Join(b.Categories(), ", "))
	fmt.Fprintf(w, "Expansions: %s\n\n", strings.Join(b.Expansions(), ", "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATCH\tVERSION\tEXPANSION\tNAME")
	for _, p := range b.PatchOptions() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, p.Version, p.ExpansionID, p.Name)
	}
	return tw.Flush()
}

// pngDirProvider reads icons exported as PNG files under root, mirroring
// the game path layout (ui/icon/020000/020005.png).
type pngDirProvider struct {
	root string
}

type pngTexture struct {
	width, height int
}

func (t pngTexture) Size() (int, int) {
	return t.width, t.height
}

func (p pngDirProvider) LoadIcon(iconID int, hiRes bool) (iconcache.Texture, error) {
	rel := strings.TrimSuffix(browser.IconPath(iconID, hiRes), ".tex") + ".png"
	f, err := os.Open(filepath.Join(p.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, iconcache.ErrNotFound
	}
	defer f.Close()

	// Only the header is needed for the size.
	conf, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", rel, err)
	}
	return pngTexture{width: conf.Width, height: conf.Height}, nil
}
