package repository

import (
	"context"
	"database/sql"
	"fmt"

	"recipeshare/internal/models"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ Recipes = (*RecipeRepository)(nil)

const (
	insertRecipeSQL = `INSERT INTO recipes (title, instructions, minutes_to_complete, user_id) VALUES (?, ?, ?, ?)`

	// Owner summary is joined in so a listing is a single query and the
	// embedded user never drags its own recipe list along.
	selectAllRecipesSQL = `
SELECT r.id, r.title, r.instructions, r.minutes_to_complete,
       u.id, u.username, u.image_url, u.bio
FROM recipes r
JOIN users u ON u.id = r.user_id
ORDER BY r.id`

	selectRecipesByUserSQL = `SELECT id, title, minutes_to_complete FROM recipes WHERE user_id = ? ORDER BY id`
)

// Create inserts a new recipe and returns its ID.
func (r *RecipeRepository) Create(ctx context.Context, rec models.Recipe) (int, error) {
	var minutes any
	if rec.MinutesToComplete != nil {
		minutes = *rec.MinutesToComplete
	}
	res, err := r.db.ExecContext(ctx, insertRecipeSQL, rec.Title, rec.Instructions, minutes, rec.UserID)
	if err != nil {
		return 0, fmt.Errorf("insert recipe %q: %w", rec.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for recipe %q: %w", rec.Title, err)
	}
	return int(lastID), nil
}

// ListAll returns every recipe with its owner summary embedded.
func (r *RecipeRepository) ListAll(ctx context.Context) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, selectAllRecipesSQL)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		var (
			rec      models.Recipe
			minutes  sql.NullInt64
			owner    models.UserSummary
			imageURL sql.NullString
			bio      sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Instructions, &minutes,
			&owner.ID, &owner.Username, &imageURL, &bio,
		); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		if minutes.Valid {
			m := int(minutes.Int64)
			rec.MinutesToComplete = &m
		}
		owner.ImageURL = imageURL.String
		owner.Bio = bio.String
		rec.UserID = owner.ID
		rec.User = &owner
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}
	return recipes, nil
}

// ListByUser returns recipe summaries owned by the given user, for embedding
// in a User payload.
func (r *RecipeRepository) ListByUser(ctx context.Context, userID int) ([]models.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx, selectRecipesByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select recipes for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]models.RecipeSummary, 0)
	for rows.Next() {
		var (
			s       models.RecipeSummary
			minutes sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Title, &minutes); err != nil {
			return nil, fmt.Errorf("scan recipe summary: %w", err)
		}
		if minutes.Valid {
			m := int(minutes.Int64)
			s.MinutesToComplete = &m
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe summaries: %w", err)
	}
	return summaries, nil
}
