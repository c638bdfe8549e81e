package toolset

import (
	"sort"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// UncategorizedLabel is the sentinel group for tools without a category.
const UncategorizedLabel = "Uncategorized"

// CategoryGroup is one category bucket of a grouped view.
type CategoryGroup struct {
	Category string        `json:"category"`
	Tools    []models.Tool `json:"tools"`
}

// GroupByCategory partitions the tools into per-category groups. Every input
// tool lands in exactly one group, input order is preserved within each group,
// and groups come back in lexicographic category order so iteration is
// deterministic.
func GroupByCategory(tools []models.Tool) []CategoryGroup {
	buckets := make(map[string][]models.Tool)
	for _, tool := range tools {
		category := tool.Category
		if category == "" {
			category = UncategorizedLabel
		}
		buckets[category] = append(buckets[category], tool)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CategoryGroup{Category: name, Tools: buckets[name]})
	}
	return groups
}
