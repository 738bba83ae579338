package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"recipeshare/internal/models"
	"recipeshare/internal/repository"
)

// MinInstructionsLen is the minimum instructions length in characters.
const MinInstructionsLen = 50

var (
	ErrTitleRequired        = errors.New("title is required")
	ErrInstructionsTooShort = fmt.Errorf("instructions must be at least %d characters long", MinInstructionsLen)
)

type RecipeService struct {
	recipes  repository.Recipes
	users    repository.Users
	activity repository.Activity
}

func NewRecipeService(recipes repository.Recipes, users repository.Users, activity repository.Activity) *RecipeService {
	return &RecipeService{recipes: recipes, users: users, activity: activity}
}

// Create validates the input, persists a recipe owned by userID and returns
// it with the owner summary embedded.
func (s *RecipeService) Create(ctx context.Context, userID int, p CreateRecipeParams) (*models.Recipe, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(p.Instructions) < MinInstructionsLen {
		return nil, ErrInstructionsTooShort
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		// Session pointed at a user that no longer exists.
		return nil, ErrNoSession
	}

	rec := models.Recipe{
		Title:             p.Title,
		Instructions:      p.Instructions,
		MinutesToComplete: p.MinutesToComplete,
		UserID:            userID,
	}
	id, err := s.recipes.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	summary := owner.Summary()
	rec.User = &summary

	s.record(ctx, fmt.Sprintf("user %q created recipe %q", owner.Username, rec.Title),
		map[string]any{"user_id": userID, "recipe_id": id})
	return &rec, nil
}

// List returns every recipe in the system with owner summaries, no
// per-user filtering.
func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.ListAll(ctx)
}

func (s *RecipeService) record(ctx context.Context, desc string, meta map[string]any) {
	_ = s.activity.Append(ctx, models.ActivityEvent{Type: EventRecipeCreated, Description: desc, Metadata: meta})
}
