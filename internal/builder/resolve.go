package builder

import "github.com/a1hena/IconBrowser/pkg/patchdata"

// ResolveStats counts what happened to the rows of one table.
type ResolveStats struct {
	Rows     int // Data rows seen
	Skipped  int // Malformed id, malformed or out of range icon, or no icon
	Fallback int // Rows attributed to the fallback patch
}

// ResolveIcons maps every icon referenced by rows to the earliest patch that
// introduced it. Field 0 of a row is the entity id and iconColumn locates the
// icon id. Entities missing from entityPatch are attributed to fallback.
// Rows with a malformed id or icon, or an icon outside [1, MaxIcon], are
// skipped.
func ResolveIcons(rows [][]string, iconColumn int, entityPatch map[int]int, fallback int) (map[int]int, ResolveStats) {
	icons := make(map[int]int)
	var stats ResolveStats

	for _, row := range rows {
		stats.Rows++

		if len(row) == 0 || iconColumn < 0 || iconColumn >= len(row) {
			stats.Skipped++
			continue
		}
		entity, ok := parseInt(row[0])
		if !ok {
			stats.Skipped++
			continue
		}
		icon, ok := parseInt(row[iconColumn])
		if !ok || icon <= 0 || icon > patchdata.MaxIcon {
			stats.Skipped++
			continue
		}

		patch, ok := entityPatch[entity]
		if !ok {
			patch = fallback
			stats.Fallback++
		}

		if prev, seen := icons[icon]; seen && prev <= patch {
			continue
		}
		icons[icon] = patch
	}

	return icons, stats
}
