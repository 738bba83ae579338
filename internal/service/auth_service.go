package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipeshare/internal/models"
	"recipeshare/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows. Messages are the exact strings returned to
// clients, so login failures stay indistinguishable between unknown user
// and wrong password.
var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameTaken      = errors.New("username must be unique")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no active session")
)

// Activity event types.
const (
	EventSignUp        = "SIGNUP"
	EventLogin         = "LOGIN"
	EventLogout        = "LOGOUT"
	EventRecipeCreated = "RECIPE_CREATED"
)

// AuthService handles user auth logic
type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
	recipes  repository.Recipes
	activity repository.Activity
	ttl      time.Duration
}

func NewAuthService(users repository.Users, sessions repository.Sessions, recipes repository.Recipes, activity repository.Activity, ttl time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, recipes: recipes, activity: activity, ttl: ttl}
}

// SignUp validates input, hashes the password, creates the user and
// establishes a session (auto-login).
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (*models.User, *models.Session, error) {
	if strings.TrimSpace(p.Username) == "" {
		return nil, nil, ErrUsernameRequired
	}
	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, nil, err
	}

	u := models.User{
		Username:     p.Username,
		PasswordHash: hash,
		ImageURL:     p.ImageURL,
		Bio:          p.Bio,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}
	u.ID = id
	u.Recipes = []models.RecipeSummary{}

	sess, err := s.issueSession(ctx, id)
	if err != nil {
		// Auto-login is part of sign-up. Without a session the account must
		// not exist either, or a retry would hit the unique username.
		if delErr := s.users.Delete(ctx, id); delErr != nil {
			return nil, nil, errors.Join(err, delErr)
		}
		return nil, nil, err
	}

	s.record(ctx, EventSignUp, fmt.Sprintf("user %q signed up", u.Username), map[string]any{"user_id": id})
	return &u, sess, nil
}

// Login verifies credentials and establishes a session. Unknown username and
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, c Credentials) (*models.User, *models.Session, error) {
	u, err := s.users.GetByUsername(ctx, c.Username)
	if err != nil {
		return nil, nil, err
	}
	if u == nil || verifyPassword(u.PasswordHash, c.Password) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.attachRecipes(ctx, u); err != nil {
		return nil, nil, err
	}
	sess, err := s.issueSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}

	s.record(ctx, EventLogin, fmt.Sprintf("user %q logged in", u.Username), map[string]any{"user_id": u.ID})
	return u, sess, nil
}

// Logout terminates the session bound to token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoSession
	}
	userID, err := s.sessions.Resolve(ctx, token, time.Now())
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrNoSession
	}
	if _, err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}

	s.record(ctx, EventLogout, "user logged out", map[string]any{"user_id": userID})
	return nil
}

// CurrentUser returns the user bound to token. An unknown, expired, or
// dangling session (user since removed) is reported as ErrNoSession, never
// as a distinct condition.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrNoSession
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoSession
	}
	if err := s.attachRecipes(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResolveSession maps a token to a user id, 0 meaning anonymous.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	return s.sessions.Resolve(ctx, token, time.Now())
}

func (s *AuthService) issueSession(ctx context.Context, userID int) (*models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *AuthService) attachRecipes(ctx context.Context, u *models.User) error {
	summaries, err := s.recipes.ListByUser(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("load recipes for user %d: %w", u.ID, err)
	}
	u.Recipes = summaries
	return nil
}

// record appends an activity event. The owning write already committed, so
// a failed append must not turn the request into an error.
func (s *AuthService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	_ = s.activity.Append(ctx, models.ActivityEvent{Type: typ, Description: desc, Metadata: meta})
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash. bcrypt does the constant-time
// comparison internally.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
