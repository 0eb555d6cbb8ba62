// Package patchdata defines the icon patch dataset: game patches, per-category
// icon-id intervals and the serialized artifact that carries them from the
// offline builder to the runtime index.
package patchdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// MaxIcon is the largest icon id a dataset may carry. Icon sets are 32-bit
// bitmaps.
const MaxIcon = math.MaxUint32

// Dataset errors.
var (
	ErrMalformedInterval = errors.New("malformed interval: expected [start,end,patchId]")
	ErrUnsortedIntervals = errors.New("intervals not sorted by start")
	ErrOverlappingRanges = errors.New("intervals overlap")
	ErrInvertedInterval  = errors.New("interval start greater than end")
	ErrUnmergedIntervals = errors.New("adjacent intervals share a patch id")
	ErrIconOutOfRange    = errors.New("icon id out of range")
)

// Patch is one game patch release.
type Patch struct {
	ID            int    `json:"id"`      // Release order, not necessarily contiguous
	Version       string `json:"version"` // e.g. "6.18"
	Name          string `json:"name"`
	ExpansionID   int    `json:"expansionId"`
	ExpansionName string `json:"expansionName"`
	IsExpansion   bool   `json:"isExpansion"` // Expansion launch patch
}

// String returns "Version Name".
func (p Patch) String() string {
	if p.Name == "" {
		return p.Version
	}
	return p.Version + " " + p.Name
}

// Interval is a closed range of icon ids attributed to a single patch.
type Interval struct {
	Start   int
	End     int
	PatchID int
}

// Contains reports whether icon lies within [Start, End].
func (iv Interval) Contains(icon int) bool {
	return icon >= iv.Start && icon <= iv.End
}

// Len returns the number of icon ids covered by the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Range returns the interval bounds without the patch id.
func (iv Interval) Range() Range {
	return Range{Start: iv.Start, End: iv.End}
}

// MarshalJSON encodes the interval as [start,end,patchId].
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{iv.Start, iv.End, iv.PatchID})
}

// UnmarshalJSON decodes an interval from [start,end,patchId].
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var tuple []int
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInterval, err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("%w: got %d elements", ErrMalformedInterval, len(tuple))
	}
	iv.Start, iv.End, iv.PatchID = tuple[0], tuple[1], tuple[2]
	return nil
}

// Range is a closed span of icon ids.
type Range struct {
	Start int
	End   int
}

// CategoryRange is a Range tagged with the category it was found in.
type CategoryRange struct {
	Category string
	Range
}

// Dataset is the unit transferred from the builder to the index.
type Dataset struct {
	Generated  time.Time  `json:"generated"`
	Patches    []Patch    `json:"patches"`
	Categories Categories `json:"categories"`
}

// Validate checks the interval invariants of every category.
func (d *Dataset) Validate() error {
	for _, name := range d.Categories.Names() {
		if err := Validate(d.Categories.Get(name)); err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
	}
	return nil
}
