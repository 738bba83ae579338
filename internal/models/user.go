package models

// User is an account holder. The bcrypt hash never leaves the server.
type User struct {
	ID           int             `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"` // don’t expose hash
	ImageURL     string          `json:"image_url"`
	Bio          string          `json:"bio"`
	Recipes      []RecipeSummary `json:"recipes"`
}

// UserSummary is the cross-reference embedded in a Recipe. It carries no
// recipe list, so Recipe→User→Recipes cannot recurse.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
	Bio      string `json:"bio"`
}

// Summary projects a User into its embeddable form.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}
