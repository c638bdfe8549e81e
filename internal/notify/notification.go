package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level classifies a mutation outcome
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Operation names the store mutation that produced a notification
type Operation string

const (
	OpLoad           Operation = "load"
	OpCreate         Operation = "create"
	OpUpdate         Operation = "update"
	OpDelete         Operation = "delete"
	OpToggleFavorite Operation = "toggle_favorite"
)

// Notification is one mutation outcome reported to the sink. The sink is
// write-only and fire-and-forget: nothing in the core ever reads back from it.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Level     Level      `json:"level"`
	Operation Operation  `json:"operation"`
	Message   string     `json:"message"`
	ToolID    *uuid.UUID `json:"tool_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// New creates a notification for a mutation outcome
func New(userID uuid.UUID, level Level, op Operation, message string, toolID *uuid.UUID) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Level:     level,
		Operation: op,
		Message:   message,
		ToolID:    toolID,
		CreatedAt: time.Now().UTC(),
	}
}
