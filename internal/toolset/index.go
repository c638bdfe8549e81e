package toolset

import (
	"sort"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// Categories returns the distinct category values across the collection,
// case-sensitive and sorted ascending. Used to populate selection controls,
// so the empty category is skipped: selecting it would mean "no filter".
func Categories(tools []models.Tool) []string {
	seen := make(map[string]struct{}, len(tools))
	out := make([]string, 0, len(tools))
	for _, tool := range tools {
		if tool.Category == "" {
			continue
		}
		if _, ok := seen[tool.Category]; ok {
			continue
		}
		seen[tool.Category] = struct{}{}
		out = append(out, tool.Category)
	}
	sort.Strings(out)
	return out
}

// Tags returns the distinct tags flattened across all tools' tag sets,
// case-sensitive and sorted ascending.
func Tags(tools []models.Tool) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tool := range tools {
		for _, tag := range tool.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}
