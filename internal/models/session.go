package models

import "time"

// Session is a server-side login record. The client holds only the opaque
// token in a cookie; everything else stays in the database.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
