// Package browser holds the icon browser's view state: the active filter,
// the selection and the icon list derived from them. Rendering is left to
// the host; everything here is plain data for it to draw.
package browser

import (
	"fmt"

	"github.com/a1hena/IconBrowser/internal/iconcache"
	"github.com/a1hena/IconBrowser/pkg/iconindex"
	"github.com/a1hena/IconBrowser/pkg/patchdata"
)

// Filter sentinels.
const (
	AllCategories = ""
	AnyExpansion  = -1
	AnyPatch      = 0
	NoSearch      = 0
)

// Filter selects which icons are visible.
type Filter struct {
	Category    string // AllCategories or a category name
	ExpansionID int    // AnyExpansion or an expansion group id
	PatchID     int    // AnyPatch or a patch id
	SearchID    int    // NoSearch or an exact icon id
}

// IconInfo is what a tooltip shows for an icon.
type IconInfo struct {
	ID            int
	Category      string
	PatchID       int
	Version       string
	PatchName     string
	ExpansionName string
}

// Browser tracks filter and selection state over an index. It is meant to
// be driven from a single UI thread.
type Browser struct {
	index    *iconindex.Index
	textures *iconcache.Cache
	pageSize int

	filter   Filter
	selected int

	visible []int
	dirty   bool
}

// New creates a browser showing every icon. textures may be nil.
func New(index *iconindex.Index, textures *iconcache.Cache, pageSize int) *Browser {
	if pageSize < 1 {
		pageSize = 100
	}
	return &Browser{
		index:    index,
		textures: textures,
		pageSize: pageSize,
		filter:   Filter{Category: AllCategories, ExpansionID: AnyExpansion, PatchID: AnyPatch},
		dirty:    true,
	}
}

// Filter returns the active filter.
func (b *Browser) Filter() Filter {
	return b.filter
}

// SetCategory restricts the view to one category, or all with AllCategories.
func (b *Browser) SetCategory(category string) {
	if b.filter.Category != category {
		b.filter.Category = category
		b.dirty = true
	}
}

// SetExpansion restricts the view to one expansion and clears the patch choice.
func (b *Browser) SetExpansion(expansionID int) {
	if b.filter.ExpansionID != expansionID || b.filter.PatchID != AnyPatch {
		b.filter.ExpansionID = expansionID
		b.filter.PatchID = AnyPatch
		b.dirty = true
	}
}

// SetPatch restricts the view to one patch. The expansion follows the patch.
func (b *Browser) SetPatch(patchID int) {
	if b.filter.PatchID == patchID {
		return
	}
	b.filter.PatchID = patchID
	if p, ok := b.index.FindPatch(patchID); ok {
		b.filter.ExpansionID = p.ExpansionID
	}
	b.dirty = true
}

// SetSearch narrows the view to a single icon id; NoSearch clears it.
func (b *Browser) SetSearch(iconID int) {
	if iconID < 0 {
		iconID = NoSearch
	}
	if b.filter.SearchID != iconID {
		b.filter.SearchID = iconID
		b.dirty = true
	}
}

// Reset clears every filter.
func (b *Browser) Reset() {
	b.filter = Filter{Category: AllCategories, ExpansionID: AnyExpansion, PatchID: AnyPatch}
	b.dirty = true
}

// Select marks an icon as selected.
func (b *Browser) Select(iconID int) {
	b.selected = iconID
}

// Selected returns the selected icon, if any.
func (b *Browser) Selected() (int, bool) {
	return b.selected, b.selected > 0
}

// Categories lists the category choices.
func (b *Browser) Categories() []string {
	return b.index.Categories()
}

// Expansions lists the expansion choices in expansion id order.
func (b *Browser) Expansions() []string {
	return b.index.ExpansionNames()
}

// PatchOptions lists the patches selectable under the current expansion.
func (b *Browser) PatchOptions() []patchdata.Patch {
	if b.filter.ExpansionID == AnyExpansion {
		return b.index.Patches()
	}
	return b.index.PatchesForExpansion(b.filter.ExpansionID)
}

// Visible returns the icon ids matching the filter in ascending order.
// The result is recomputed only after the filter changes.
func (b *Browser) Visible() []int {
	if !b.dirty {
		return b.visible
	}
	b.visible = b.computeVisible()
	b.dirty = false
	return b.visible
}

func (b *Browser) computeVisible() []int {
	var patchIDs []int
	switch {
	case b.filter.PatchID != AnyPatch:
		patchIDs = []int{b.filter.PatchID}
	case b.filter.ExpansionID != AnyExpansion:
		for _, p := range b.index.PatchesForExpansion(b.filter.ExpansionID) {
			patchIDs = append(patchIDs, p.ID)
		}
		if len(patchIDs) == 0 {
			return nil
		}
	}

	set := b.index.IconSet(b.filter.Category, patchIDs...)

	if b.filter.SearchID != NoSearch {
		if b.filter.SearchID <= patchdata.MaxIcon && set.Contains(uint32(b.filter.SearchID)) {
			return []int{b.filter.SearchID}
		}
		return nil
	}

	out := make([]int, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// PageCount returns the number of pages of visible icons.
func (b *Browser) PageCount() int {
	n := len(b.Visible())
	return (n + b.pageSize - 1) / b.pageSize
}

// Page returns the visible icons on page n, counting from zero.
func (b *Browser) Page(n int) []int {
	visible := b.Visible()
	start := n * b.pageSize
	if n < 0 || start >= len(visible) {
		return nil
	}
	end := min(start+b.pageSize, len(visible))
	return visible[start:end]
}

// Describe returns tooltip information for an icon. With a category filter
// active the icon is looked up in that category only.
func (b *Browser) Describe(iconID int) (IconInfo, bool) {
	info := IconInfo{ID: iconID}

	if b.filter.Category != AllCategories {
		patch, ok := b.index.CategoryIconPatchID(b.filter.Category, iconID)
		if !ok {
			return info, false
		}
		info.Category, info.PatchID = b.filter.Category, patch
	} else {
		cat, patch, ok := b.index.LocateIcon(iconID)
		if !ok {
			return info, false
		}
		info.Category, info.PatchID = cat, patch
	}

	if p, ok := b.index.FindPatch(info.PatchID); ok {
		info.Version = p.Version
		info.PatchName = p.Name
		info.ExpansionName = p.ExpansionName
	}
	return info, true
}

// Texture returns the icon's texture from the cache, if one is attached.
func (b *Browser) Texture(iconID int, hiRes bool) (iconcache.Texture, bool) {
	if b.textures == nil {
		return nil, false
	}
	return b.textures.Get(iconID, hiRes)
}

// IconPath returns the game path of an icon texture, as copied to the clipboard.
func IconPath(iconID int, hiRes bool) string {
	suffix := ""
	if hiRes {
		suffix = "_hr1"
	}
	return fmt.Sprintf("ui/icon/%06d/%06d%s.tex", iconID/1000*1000, iconID, suffix)
}
