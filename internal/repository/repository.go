package repository

import (
	"context"
	"database/sql"
	"time"

	"recipeshare/internal/models"
)

// Users is the persistence gateway for accounts. Create reports a duplicate
// username as ErrUsernameTaken so callers branch on a typed outcome instead
// of inspecting driver errors.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type Recipes interface {
	Create(ctx context.Context, r models.Recipe) (int, error)
	ListAll(ctx context.Context) ([]models.Recipe, error)
	ListByUser(ctx context.Context, userID int) ([]models.RecipeSummary, error)
}

// Sessions stores login sessions keyed by opaque token. Resolve returns 0
// when the token is unknown, expired, or points at a deleted user.
type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Resolve(ctx context.Context, token string, now time.Time) (int, error)
	Delete(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Activity interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
	Since(ctx context.Context, after time.Time) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users    Users
	Recipes  Recipes
	Sessions Sessions
	Activity Activity
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Recipes:  NewRecipeRepository(db),
		Sessions: NewSessionRepository(db),
		Activity: NewActivitySQLite(db),
	}
}
