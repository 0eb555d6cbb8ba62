// Package iconindex answers which game patch introduced an icon, and which
// icons a patch introduced, over a dataset produced by the patchdata builder.
//
// An Index loads its dataset once, on first use, and never changes it
// afterwards. It is safe for concurrent use. A dataset that cannot be loaded
// leaves the index empty: every query then reports "not found" instead of
// failing.
package iconindex

import (
	"sort"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/a1hena/IconBrowser/pkg/patchdata"
)

// Index serves point and range queries over an icon patch dataset.
type Index struct {
	load func() (*patchdata.Dataset, error)
	once sync.Once
	snap *snapshot
	err  error
}

// snapshot is the immutable loaded form of a dataset.
type snapshot struct {
	generated  time.Time
	patches    []patchdata.Patch
	categories []string
	intervals  map[string][]patchdata.Interval
}

// New returns an index that loads the dataset at path on first use.
func New(path string) *Index {
	return &Index{
		load: func() (*patchdata.Dataset, error) {
			return patchdata.Read(path)
		},
	}
}

// FromDataset returns an index over an already decoded dataset.
func FromDataset(ds *patchdata.Dataset) *Index {
	idx := &Index{
		load: func() (*patchdata.Dataset, error) { return ds, nil },
	}
	idx.ensureLoaded()
	return idx
}

func (x *Index) ensureLoaded() *snapshot {
	x.once.Do(func() {
		var ds *patchdata.Dataset
		if x.load != nil {
			ds, x.err = x.load()
		}
		if ds == nil {
			x.snap = &snapshot{intervals: map[string][]patchdata.Interval{}}
			return
		}
		x.snap = newSnapshot(ds)
	})
	return x.snap
}

func newSnapshot(ds *patchdata.Dataset) *snapshot {
	s := &snapshot{
		generated:  ds.Generated,
		patches:    append([]patchdata.Patch(nil), ds.Patches...),
		categories: ds.Categories.Names(),
		intervals:  make(map[string][]patchdata.Interval, ds.Categories.Len()),
	}
	for _, name := range s.categories {
		s.intervals[name] = append([]patchdata.Interval(nil), ds.Categories.Get(name)...)
	}
	return s
}

// Err returns the error encountered while loading, if any. It triggers the
// load when called first.
func (x *Index) Err() error {
	x.ensureLoaded()
	return x.err
}

// GeneratedAt returns the dataset generation time, zero if none was loaded.
func (x *Index) GeneratedAt() time.Time {
	return x.ensureLoaded().generated
}

// Patches returns every patch in dataset order.
func (x *Index) Patches() []patchdata.Patch {
	return append([]patchdata.Patch(nil), x.ensureLoaded().patches...)
}

// ExpansionNames returns distinct expansion names ordered by expansion id.
func (x *Index) ExpansionNames() []string {
	patches := x.Patches()
	sort.SliceStable(patches, func(i, j int) bool {
		return patches[i].ExpansionID < patches[j].ExpansionID
	})

	var names []string
	seen := make(map[int]bool)
	for _, p := range patches {
		if seen[p.ExpansionID] {
			continue
		}
		seen[p.ExpansionID] = true
		names = append(names, p.ExpansionName)
	}
	return names
}

// FindPatch returns the patch with the given id.
func (x *Index) FindPatch(id int) (patchdata.Patch, bool) {
	for _, p := range x.ensureLoaded().patches {
		if p.ID == id {
			return p, true
		}
	}
	return patchdata.Patch{}, false
}

// FindPatchByVersion returns the patch with the given version string.
func (x *Index) FindPatchByVersion(version string) (patchdata.Patch, bool) {
	for _, p := range x.ensureLoaded().patches {
		if p.Version == version {
			return p, true
		}
	}
	return patchdata.Patch{}, false
}

// PatchesForExpansion returns the patches of one expansion in dataset order.
func (x *Index) PatchesForExpansion(expansionID int) []patchdata.Patch {
	var out []patchdata.Patch
	for _, p := range x.ensureLoaded().patches {
		if p.ExpansionID == expansionID {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns category names in the order they appear in the dataset.
func (x *Index) Categories() []string {
	return append([]string(nil), x.ensureLoaded().categories...)
}

// CategoryIconPatchID returns the patch that introduced icon within category.
func (x *Index) CategoryIconPatchID(category string, icon int) (int, bool) {
	return patchdata.Find(x.ensureLoaded().intervals[category], icon)
}

// IconPatchID returns the patch that introduced icon, searching categories in
// dataset order and returning the first match.
func (x *Index) IconPatchID(icon int) (int, bool) {
	_, patch, ok := x.LocateIcon(icon)
	return patch, ok
}

// LocateIcon returns the first category containing icon, in dataset order,
// together with the attributed patch id.
func (x *Index) LocateIcon(icon int) (string, int, bool) {
	s := x.ensureLoaded()
	for _, name := range s.categories {
		if patch, ok := patchdata.Find(s.intervals[name], icon); ok {
			return name, patch, true
		}
	}
	return "", 0, false
}

// IconPatchVersion returns the version string of the patch that introduced icon.
func (x *Index) IconPatchVersion(icon int) (string, bool) {
	id, ok := x.IconPatchID(icon)
	if !ok {
		return "", false
	}
	p, ok := x.FindPatch(id)
	if !ok {
		return "", false
	}
	return p.Version, true
}

// IconRangesForPatch returns the icon ranges of category attributed to patchID.
func (x *Index) IconRangesForPatch(category string, patchID int) []patchdata.Range {
	return patchdata.RangesFor(x.ensureLoaded().intervals[category], patchID)
}

// AllIconRangesForPatch returns the icon ranges attributed to patchID across
// all categories, in category order then range order.
func (x *Index) AllIconRangesForPatch(patchID int) []patchdata.CategoryRange {
	var out []patchdata.CategoryRange
	for _, name := range x.ensureLoaded().categories {
		for _, r := range x.IconRangesForPatch(name, patchID) {
			out = append(out, patchdata.CategoryRange{Category: name, Range: r})
		}
	}
	return out
}

// IconSet returns the icon ids of category attributed to any of patchIDs as a
// bitmap. An empty category selects every category; no patch ids selects
// every patch.
func (x *Index) IconSet(category string, patchIDs ...int) *roaring.Bitmap {
	s := x.ensureLoaded()

	categories := s.categories
	if category != "" {
		categories = []string{category}
	}

	var wanted map[int]bool
	if len(patchIDs) > 0 {
		wanted = make(map[int]bool, len(patchIDs))
		for _, id := range patchIDs {
			wanted[id] = true
		}
	}

	bm := roaring.New()
	for _, name := range categories {
		for _, iv := range s.intervals[name] {
			if wanted != nil && !wanted[iv.PatchID] {
				continue
			}
			// Clamp to the bitmap's domain; datasets built here never exceed it.
			start, end := max(iv.Start, 0), min(iv.End, patchdata.MaxIcon)
			if start > end {
				continue
			}
			bm.AddRange(uint64(start), uint64(end)+1)
		}
	}
	return bm
}
