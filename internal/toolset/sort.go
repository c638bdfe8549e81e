package toolset

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// SortTools returns a new slice ordered by the given key without mutating the
// input. Sorting is stable: tools comparing equal keep their prior relative
// order, so re-sorting an already sorted slice is a no-op.
//
// Name ordering uses case-insensitive Unicode collation rather than byte
// comparison. Unknown keys fall back to most-recent-first.
func SortTools(tools []models.Tool, key models.SortKey) []models.Tool {
	out := make([]models.Tool, len(tools))
	copy(out, tools)

	switch key {
	case models.SortNameAsc, models.SortNameDesc:
		// Collators carry internal buffers and are not safe for concurrent
		// use, so each call gets its own.
		col := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			if key == models.SortNameDesc {
				return col.CompareString(out[i].Name, out[j].Name) > 0
			}
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
