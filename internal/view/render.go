package view

import (
	"github.com/mvaldes/digital-toolkit/internal/models"
	"github.com/mvaldes/digital-toolkit/internal/toolset"
)

// Payload is the view-shaped result of running a snapshot through the
// filter/sort/group pipeline. Items is populated for grid and table modes,
// Groups for category mode.
type Payload struct {
	Mode       models.ViewMode         `json:"mode"`
	Items      []models.Tool           `json:"items,omitempty"`
	Groups     []toolset.CategoryGroup `json:"groups,omitempty"`
	Total      int                     `json:"total"`
	Categories []string                `json:"categories"`
	Tags       []string                `json:"tags"`
}

// Render applies the session's filter and sort to a collection snapshot and
// shapes the result for the active mode. The derived category and tag
// indexes are computed from the full snapshot, not the filtered subset, so
// selection controls always offer every known value.
func Render(state State, snapshot []models.Tool) Payload {
	filtered := toolset.Filter(snapshot, state.Filters)
	sorted := toolset.SortTools(filtered, state.Sort)

	payload := Payload{
		Mode:       state.Mode,
		Total:      len(sorted),
		Categories: toolset.Categories(snapshot),
		Tags:       toolset.Tags(snapshot),
	}

	if state.Mode == models.ViewCategory {
		payload.Groups = toolset.GroupByCategory(sorted)
	} else {
		payload.Items = sorted
	}
	return payload
}
