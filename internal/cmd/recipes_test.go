package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

func TestSuggestCommand_Run(t *testing.T) {
	latency := int64(850)
	suggestion := &iface.Suggestion{
		Recipe: iface.Recipe{
			ID:          42,
			Title:       "Tomato Egg Stir-fry",
			Ingredients: []string{"egg", "tomato"},
			Steps:       []string{"Beat the eggs", "Fry the tomatoes"},
			Nutrition:   &iface.Nutrition{Calories: 320, ProteinG: 18},
		},
		LatencyMS: &latency,
	}

	t.Run("prints recipe", func(t *testing.T) {
		var got []string
		mockRecipes := &MockRecipeService{
			SuggestFunc: func(ctx context.Context, ingredients []string) (*iface.Suggestion, error) {
				got = ingredients
				return suggestion, nil
			},
		}

		output, err := executeWithMocks(nil, mockRecipes, nil, "suggest", "egg", "tomato")
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}

		if !reflect.DeepEqual(got, []string{"egg", "tomato"}) {
			t.Errorf("Suggest called with %v", got)
		}
		for _, want := range []string{"Tomato Egg Stir-fry", "ID: 42", "1. Beat the eggs", "2. Fry the tomatoes", "320 kcal", "850 ms"} {
			if !strings.Contains(output, want) {
				t.Errorf("Output should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		mockRecipes := &MockRecipeService{
			SuggestFunc: func(ctx context.Context, ingredients []string) (*iface.Suggestion, error) {
				return suggestion, nil
			},
		}

		output, err := executeWithMocks(nil, mockRecipes, nil, "suggest", "egg", "-o", "json")
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}

		var got iface.Suggestion
		if err := json.Unmarshal([]byte(output), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, output)
		}
		if got.Recipe.ID != 42 || got.LatencyMS == nil || *got.LatencyMS != 850 {
			t.Errorf("unexpected suggestion: %+v", got)
		}
	})

	t.Run("requires an ingredient", func(t *testing.T) {
		_, err := executeWithMocks(nil, nil, nil, "suggest")
		if err == nil {
			t.Fatal("expected an error without ingredients")
		}
	})

	t.Run("returns service error", func(t *testing.T) {
		mockRecipes := &MockRecipeService{
			SuggestFunc: func(ctx context.Context, ingredients []string) (*iface.Suggestion, error) {
				return nil, errors.New("not logged in")
			},
		}

		_, err := executeWithMocks(nil, mockRecipes, nil, "suggest", "egg")
		if err == nil || !strings.Contains(err.Error(), "not logged in") {
			t.Errorf("expected service error, got: %v", err)
		}
	})
}

func TestFavoritesListCommand_Run(t *testing.T) {
	saved := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		args       []string
		favorites  []iface.Favorite
		listErr    error
		wantOutput []string
		wantErr    bool
	}{
		{
			name: "lists favorites as table",
			args: []string{"favorites", "list"},
			favorites: []iface.Favorite{
				{ID: 1, Recipe: iface.Recipe{ID: 42, Title: "Pho"}, CreatedAt: &saved},
				{ID: 2, Recipe: iface.Recipe{ID: 7, Title: "Banh Mi"}},
			},
			wantOutput: []string{"RECIPE ID", "42", "Pho", "7", "Banh Mi"},
		},
		{
			name:       "shows empty message",
			args:       []string{"favorites", "list"},
			wantOutput: []string{"No favorites yet"},
		},
		{
			name:       "empty json is an array",
			args:       []string{"fav", "ls", "-o", "json"},
			wantOutput: []string{"[]"},
		},
		{
			name:    "returns service error",
			args:    []string{"favorites", "list"},
			listErr: errors.New("failed to fetch favorites"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRecipes := &MockRecipeService{
				ListFavoritesFunc: func(ctx context.Context) ([]iface.Favorite, error) {
					return tt.favorites, tt.listErr
				},
			}

			output, err := executeWithMocks(nil, mockRecipes, nil, tt.args...)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantOutput {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestFavoritesAddCommand_Run(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		addErr     error
		wantID     int64
		wantOutput string
		wantErrMsg string
	}{
		{name: "saves recipe", arg: "42", wantID: 42, wantOutput: "Recipe 42 saved"},
		{name: "rejects non-numeric id", arg: "abc", wantErrMsg: "invalid recipe ID"},
		{name: "rejects zero id", arg: "0", wantErrMsg: "invalid recipe ID"},
		{name: "returns not found", arg: "99", wantID: 99, addErr: errors.New("recipe not found: 99"), wantErrMsg: "recipe not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			mockRecipes := &MockRecipeService{
				AddFavoriteFunc: func(ctx context.Context, recipeID int64) (int64, error) {
					gotID = recipeID
					return 1, tt.addErr
				},
			}

			output, err := executeWithMocks(nil, mockRecipes, nil, "favorites", "add", tt.arg)

			if gotID != tt.wantID {
				t.Errorf("AddFavorite called with %d, want %d", gotID, tt.wantID)
			}
			if tt.wantErrMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Errorf("Error should contain %q, got: %v", tt.wantErrMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if !strings.Contains(output, tt.wantOutput) {
				t.Errorf("Output should contain %q, got: %s", tt.wantOutput, output)
			}
		})
	}
}

func TestFavoritesRemoveCommand_Run(t *testing.T) {
	var gotID int64
	mockRecipes := &MockRecipeService{
		RemoveFavoriteFunc: func(ctx context.Context, recipeID int64) error {
			gotID = recipeID
			return nil
		},
	}

	output, err := executeWithMocks(nil, mockRecipes, nil, "favorites", "rm", "42", "--yes")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if gotID != 42 {
		t.Errorf("RemoveFavorite called with %d, want 42", gotID)
	}
	if !strings.Contains(output, "removed from favorites") {
		t.Errorf("Output should confirm removal, got: %s", output)
	}
}
