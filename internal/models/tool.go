package models

import (
	"time"

	"github.com/google/uuid"
)

// Tool represents one cataloged tool or resource in a user's toolkit
type Tool struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WebsiteURL  string    `json:"website_url"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Notes       *string   `json:"notes,omitempty"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToolFields carries every user-editable field of a tool. The store assigns
// id and timestamps; callers never set those directly.
type ToolFields struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	WebsiteURL  string   `json:"website_url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Notes       *string  `json:"notes,omitempty"`
	IsFavorite  bool     `json:"is_favorite"`
}

// HasTag reports whether the tool carries the given tag (exact match).
func (t *Tool) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}
