package models

import "time"

// CategoryMeta is optional display metadata for a category name. It never
// constrains which category values a tool may carry; unknown categories are
// always valid.
type CategoryMeta struct {
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
