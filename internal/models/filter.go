package models

// FilterState is the combination of controls that determines which tools are
// visible. The zero value matches everything.
type FilterState struct {
	Search            string   `json:"search"`
	Category          string   `json:"category"`
	Tags              []string `json:"tags"`
	ShowFavoritesOnly bool     `json:"show_favorites_only"`
}

// IsEmpty reports whether the filter is the identity (no dimension active).
func (f FilterState) IsEmpty() bool {
	return f.Search == "" && f.Category == "" && len(f.Tags) == 0 && !f.ShowFavoritesOnly
}

// SortKey selects the ordering applied to a filtered collection
type SortKey string

const (
	SortRecent   SortKey = "recent"
	SortNameAsc  SortKey = "name_asc"
	SortNameDesc SortKey = "name_desc"
)

// DefaultSortKey is applied when a user has no persisted preference.
const DefaultSortKey = SortRecent

// ViewMode selects how the filtered collection is presented
type ViewMode string

const (
	ViewGrid     ViewMode = "grid"
	ViewTable    ViewMode = "table"
	ViewCategory ViewMode = "category"
)

// DefaultViewMode is the initial presentation for a new session.
const DefaultViewMode = ViewGrid
