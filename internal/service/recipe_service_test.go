package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recipeshare/internal/models"
)

func newRecipeService(recipes *mockRecipeRepo, users *mockUserRepo, activity *mockActivityRepo) *RecipeService {
	if recipes == nil {
		recipes = &mockRecipeRepo{}
	}
	if users == nil {
		users = &mockUserRepo{}
	}
	if activity == nil {
		activity = &mockActivityRepo{}
	}
	return NewRecipeService(recipes, users, activity)
}

func validInstructions() string {
	return strings.Repeat("chop, stir, simmer. ", 5) // 100 chars
}

func TestRecipeService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateRecipeParams
		wantErr error
	}{
		{
			name:    "missing title",
			params:  CreateRecipeParams{Title: "   ", Instructions: validInstructions()},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "instructions too short",
			params:  CreateRecipeParams{Title: "Soup", Instructions: "too short"},
			wantErr: ErrInstructionsTooShort,
		},
		{
			name:    "instructions one char below minimum",
			params:  CreateRecipeParams{Title: "Soup", Instructions: strings.Repeat("x", MinInstructionsLen-1)},
			wantErr: ErrInstructionsTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := &mockRecipeRepo{
				CreateFn: func(r models.Recipe) (int, error) {
					t.Fatal("Create should not be called for invalid input")
					return 0, nil
				},
			}
			svc := newRecipeService(recipes, nil, nil)

			_, err := svc.Create(context.Background(), 1, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(recipes.createCalls) != 0 {
				t.Fatalf("expected no Create calls, got %d", len(recipes.createCalls))
			}
		})
	}
}

func TestRecipeService_Create_Success(t *testing.T) {
	minutes := 45
	recipes := &mockRecipeRepo{
		CreateFn: func(r models.Recipe) (int, error) { return 11, nil },
	}
	users := &mockUserRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id != 7 {
				t.Fatalf("expected owner lookup for id 7, got %d", id)
			}
			return &models.User{ID: 7, Username: "diana", PasswordHash: "hash", Bio: "cook"}, nil
		},
	}
	activity := &mockActivityRepo{}
	svc := newRecipeService(recipes, users, activity)

	rec, err := svc.Create(context.Background(), 7, CreateRecipeParams{
		Title:             "Soup",
		Instructions:      validInstructions(),
		MinutesToComplete: &minutes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 11 || rec.Title != "Soup" {
		t.Fatalf("unexpected recipe: %+v", rec)
	}
	if rec.MinutesToComplete == nil || *rec.MinutesToComplete != 45 {
		t.Fatalf("expected minutes=45, got %v", rec.MinutesToComplete)
	}

	// Owner comes from the session's user, summarized without its recipes.
	if rec.User == nil || rec.User.ID != 7 || rec.User.Username != "diana" {
		t.Fatalf("unexpected owner summary: %+v", rec.User)
	}

	// Persisted row carries the session user id.
	if len(recipes.createCalls) != 1 || recipes.createCalls[0].UserID != 7 {
		t.Fatalf("expected persisted user_id=7, got %+v", recipes.createCalls)
	}

	if len(activity.events) != 1 || activity.events[0].Type != EventRecipeCreated {
		t.Fatalf("expected RECIPE_CREATED activity event, got %+v", activity.events)
	}
}

func TestRecipeService_Create_DanglingSessionUser(t *testing.T) {
	users := &mockUserRepo{
		GetByIDFn: func(id int) (*models.User, error) { return nil, nil },
	}
	recipes := &mockRecipeRepo{
		CreateFn: func(r models.Recipe) (int, error) {
			t.Fatal("Create should not be called without a valid owner")
			return 0, nil
		},
	}
	svc := newRecipeService(recipes, users, nil)

	_, err := svc.Create(context.Background(), 9, CreateRecipeParams{Title: "Soup", Instructions: validInstructions()})
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRecipeService_List(t *testing.T) {
	want := []models.Recipe{
		{ID: 1, Title: "Soup", User: &models.UserSummary{ID: 7, Username: "diana"}},
		{ID: 2, Title: "Bread", User: &models.UserSummary{ID: 8, Username: "bob"}},
	}
	recipes := &mockRecipeRepo{
		ListAllFn: func() ([]models.Recipe, error) { return want, nil },
	}
	svc := newRecipeService(recipes, nil, nil)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Soup" || got[1].User.Username != "bob" {
		t.Fatalf("unexpected list: %+v", got)
	}
}
