package service

import (
	"context"
	"time"

	"recipeshare/internal/models"
	"recipeshare/internal/repository"
)

// SignUpParams is the input for account creation. ImageURL and Bio are
// optional.
type SignUpParams struct {
	Username string
	Password string
	ImageURL string
	Bio      string
}

type Credentials struct {
	Username string
	Password string
}

// CreateRecipeParams deliberately has no user field: the owner always comes
// from the session.
type CreateRecipeParams struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
}

// LogFilter supports activity filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SIGNUP", "LOGIN", "LOGOUT", "RECIPE_CREATED"
}

// Authorization owns credentials and the session lifecycle.
type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (*models.User, *models.Session, error)
	Login(ctx context.Context, c Credentials) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	ResolveSession(ctx context.Context, token string) (int, error)
}

// Recipes owns recipe validation and listing.
type Recipes interface {
	Create(ctx context.Context, userID int, p CreateRecipeParams) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
}

// ActivityLog exposes append-only audit events with filtering access.
type ActivityLog interface {
	Events(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
	EventsSince(ctx context.Context, after time.Time) ([]models.ActivityEvent, error)
}

// SessionJanitor runs the background loop that drops expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type SessionJanitor interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Recipes
	ActivityLog
	SessionJanitor
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, sessionTTL time.Duration) *Service {
	return &Service{
		Authorization:  NewAuthService(repos.Users, repos.Sessions, repos.Recipes, repos.Activity, sessionTTL),
		Recipes:        NewRecipeService(repos.Recipes, repos.Users, repos.Activity),
		ActivityLog:    NewActivityService(repos.Activity),
		SessionJanitor: NewJanitorService(repos.Sessions),
	}
}
