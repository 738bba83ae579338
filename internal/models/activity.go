package models

import "time"

// ActivityEvent is a single audit log entry.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SIGNUP | LOGIN | LOGOUT | RECIPE_CREATED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
