package models

// Recipe is a user-owned recipe. UserID is always taken from the active
// session, never from client input.
type Recipe struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	Instructions      string       `json:"instructions"`
	MinutesToComplete *int         `json:"minutes_to_complete"`
	UserID            int          `json:"-"`
	User              *UserSummary `json:"user,omitempty"`
}

// RecipeSummary is the cross-reference embedded in a User payload,
// without the owner back-reference.
type RecipeSummary struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}
