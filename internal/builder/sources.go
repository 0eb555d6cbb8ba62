package builder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/a1hena/IconBrowser/pkg/patchdata"
)

// upstreamPatch is one entry of the upstream patch list.
type upstreamPatch struct {
	ID          int      `json:"ID"`
	Version     string   `json:"Version"`
	ExVersion   int      `json:"ExVersion"`
	ExName      string   `json:"ExName"`
	NameEn      string   `json:"Name_en"`
	IsExpansion flexBool `json:"IsExpansion"`
}

// flexBool accepts true/false as well as 0/1.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*b = true
	case "false", "0", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// ParsePatchList decodes the upstream patch list, sorted by patch id.
// Later duplicates of an id are dropped.
func ParsePatchList(data []byte) ([]patchdata.Patch, error) {
	var raw []upstreamPatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding patch list: %w", err)
	}

	seen := make(map[int]bool, len(raw))
	patches := make([]patchdata.Patch, 0, len(raw))
	for _, p := range raw {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		patches = append(patches, patchdata.Patch{
			ID:            p.ID,
			Version:       p.Version,
			Name:          p.NameEn,
			ExpansionID:   p.ExVersion,
			ExpansionName: p.ExName,
			IsExpansion:   bool(p.IsExpansion),
		})
	}

	sort.SliceStable(patches, func(i, j int) bool {
		return patches[i].ID < patches[j].ID
	})
	return patches, nil
}

// ParseEntityPatches decodes a category's entity id -> patch id mapping.
// Entries whose key or value is not an integer are skipped.
func ParseEntityPatches(data []byte) (map[int]int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding patch mapping: %w", err)
	}

	out := make(map[int]int, len(raw))
	for key, val := range raw {
		id, ok := parseInt(key)
		if !ok {
			continue
		}
		patch, ok := parseInt(string(val))
		if !ok {
			continue
		}
		out[id] = patch
	}
	return out, nil
}

// parseInt reports whether s is a well-formed decimal integer.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// expandURL substitutes the category name into a URL template.
func expandURL(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}
