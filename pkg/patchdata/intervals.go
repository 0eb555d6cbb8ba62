package patchdata

import (
	"fmt"
	"sort"
)

// Compress run-length encodes an icon id -> patch id mapping into sorted,
// non-overlapping, maximal intervals. Consecutive icon ids sharing a patch id
// collapse into one interval.
func Compress(iconPatches map[int]int) []Interval {
	if len(iconPatches) == 0 {
		return nil
	}

	icons := make([]int, 0, len(iconPatches))
	for icon := range iconPatches {
		icons = append(icons, icon)
	}
	sort.Ints(icons)

	var out []Interval
	cur := Interval{Start: icons[0], End: icons[0], PatchID: iconPatches[icons[0]]}
	for _, icon := range icons[1:] {
		patch := iconPatches[icon]
		if icon == cur.End+1 && patch == cur.PatchID {
			cur.End = icon
			continue
		}
		out = append(out, cur)
		cur = Interval{Start: icon, End: icon, PatchID: patch}
	}
	return append(out, cur)
}

// Expand enumerates every icon id covered by the intervals.
func Expand(intervals []Interval) map[int]int {
	out := make(map[int]int)
	for _, iv := range intervals {
		for icon := iv.Start; icon <= iv.End; icon++ {
			out[icon] = iv.PatchID
		}
	}
	return out
}

// Validate checks that intervals are well formed, within [0, MaxIcon],
// sorted by start, non-overlapping and maximal.
func Validate(intervals []Interval) error {
	for i, iv := range intervals {
		if iv.Start > iv.End {
			return fmt.Errorf("%w: [%d,%d]", ErrInvertedInterval, iv.Start, iv.End)
		}
		if iv.Start < 0 || iv.End > MaxIcon {
			return fmt.Errorf("%w: [%d,%d]", ErrIconOutOfRange, iv.Start, iv.End)
		}
		if i == 0 {
			continue
		}
		prev := intervals[i-1]
		switch {
		case iv.Start < prev.Start:
			return fmt.Errorf("%w: %d after %d", ErrUnsortedIntervals, iv.Start, prev.Start)
		case iv.Start <= prev.End:
			return fmt.Errorf("%w: [%d,%d] and [%d,%d]", ErrOverlappingRanges, prev.Start, prev.End, iv.Start, iv.End)
		case iv.Start == prev.End+1 && iv.PatchID == prev.PatchID:
			return fmt.Errorf("%w: [%d,%d] and [%d,%d] (patch %d)", ErrUnmergedIntervals, prev.Start, prev.End, iv.Start, iv.End, iv.PatchID)
		}
	}
	return nil
}

// Find returns the patch id of the interval containing icon.
// intervals must satisfy Validate.
func Find(intervals []Interval, icon int) (int, bool) {
	// First interval ending at or after icon; it contains icon iff it starts at or before it.
	i := sort.Search(len(intervals), func(i int) bool {
		return intervals[i].End >= icon
	})
	if i < len(intervals) && intervals[i].Contains(icon) {
		return intervals[i].PatchID, true
	}
	return 0, false
}

// RangesFor returns the bounds of every interval attributed to patchID, in order.
func RangesFor(intervals []Interval, patchID int) []Range {
	var out []Range
	for _, iv := range intervals {
		if iv.PatchID == patchID {
			out = append(out, iv.Range())
		}
	}
	return out
}
