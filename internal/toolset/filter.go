// Package toolset holds the pure filtering, sorting, grouping, and index
// derivation logic for a toolkit collection. Nothing in this package touches
// storage or mutates its inputs; every function takes a snapshot and returns
// a fresh result.
package toolset

import (
	"strings"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// Filter returns the tools matching every active dimension of the filter
// state, preserving the relative order of the input. An empty filter is the
// identity: the full collection comes back unchanged.
//
// Dimensions combine with AND. Within the tags dimension a single shared tag
// suffices (ANY-match, not subset).
func Filter(tools []models.Tool, filters models.FilterState) []models.Tool {
	if filters.IsEmpty() {
		out := make([]models.Tool, len(tools))
		copy(out, tools)
		return out
	}

	search := strings.ToLower(filters.Search)
	out := make([]models.Tool, 0, len(tools))
	for _, tool := range tools {
		if search != "" && !matchesSearch(&tool, search) {
			continue
		}
		if filters.Category != "" && tool.Category != filters.Category {
			continue
		}
		if len(filters.Tags) > 0 && !hasAnyTag(&tool, filters.Tags) {
			continue
		}
		if filters.ShowFavoritesOnly && !tool.IsFavorite {
			continue
		}
		out = append(out, tool)
	}
	return out
}

// matchesSearch does a case-insensitive substring test against name,
// description, category, and each tag. No accent/diacritic folding.
func matchesSearch(tool *models.Tool, searchLower string) bool {
	if strings.Contains(strings.ToLower(tool.Name), searchLower) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Description), searchLower) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Category), searchLower) {
		return true
	}
	for _, tag := range tool.Tags {
		if strings.Contains(strings.ToLower(tag), searchLower) {
			return true
		}
	}
	return false
}

func hasAnyTag(tool *models.Tool, wanted []string) bool {
	for _, tag := range wanted {
		if tool.HasTag(tag) {
			return true
		}
	}
	return false
}
