package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/smartchef/smartchef-cli/internal/api"
	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
	"github.com/smartchef/smartchef-cli/internal/session"
)

// Recipe endpoints
const (
	SuggestPath   = "/api/recipes/suggest/"
	FavoritesPath = "/api/recipes/favorites/"
)

// ErrUnexpectedRecipe is returned when a suggestion response carries no usable recipe
var ErrUnexpectedRecipe = errors.New("unexpected recipe format")

// recipeService implements iface.RecipeService
type recipeService struct {
	session *session.Manager
	client  *api.Client
}

// NewRecipeService creates a new recipe service
func NewRecipeService(sess *session.Manager, client *api.Client) iface.RecipeService {
	return &recipeService{
		session: sess,
		client:  client,
	}
}

type suggestRequest struct {
	Ingredients []string `json:"ingredients"`
}

// suggestEnvelope covers the accepted response shapes: the recipe itself,
// {"recipe": {...}} or {"result": {...}}, optionally with latency_ms
type suggestEnvelope struct {
	Recipe    *iface.Recipe `json:"recipe"`
	Result    *iface.Recipe `json:"result"`
	LatencyMS *int64        `json:"latency_ms"`
}

// NormalizeIngredients trims entries, splits comma separated values and drops empties
func NormalizeIngredients(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Suggest generates a recipe from the given ingredients
func (s *recipeService) Suggest(ctx context.Context, ingredients []string) (*iface.Suggestion, error) {
	ingredients = NormalizeIngredients(ingredients)
	if len(ingredients) == 0 {
		return nil, errors.New("at least one ingredient is required")
	}

	if err := requireSession(s.session); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := s.client.Post(ctx, SuggestPath, &suggestRequest{Ingredients: ingredients}, &raw); err != nil {
		return nil, fmt.Errorf("failed to suggest recipe: %w", err)
	}

	return decodeSuggestion(raw)
}

func decodeSuggestion(raw []byte) (*iface.Suggestion, error) {
	var env suggestEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedRecipe, err)
	}

	recipe := env.Recipe
	if recipe == nil {
		recipe = env.Result
	}
	if recipe == nil {
		var direct iface.Recipe
		if err := json.Unmarshal(raw, &direct); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedRecipe, err)
		}
		recipe = &direct
	}

	if recipe.Title == "" && len(recipe.Steps) == 0 {
		return nil, ErrUnexpectedRecipe
	}

	return &iface.Suggestion{Recipe: *recipe, LatencyMS: env.LatencyMS}, nil
}

// ListFavorites returns the saved recipes
func (s *recipeService) ListFavorites(ctx context.Context) ([]iface.Favorite, error) {
	if err := requireSession(s.session); err != nil {
		return nil, err
	}

	var favorites []iface.Favorite
	if err := s.client.Get(ctx, FavoritesPath, &favorites); err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return favorites, nil
}

type favoriteRequest struct {
	RecipeID int64 `json:"recipe_id"`
}

type addFavoriteResponse struct {
	Detail     string `json:"detail"`
	FavoriteID int64  `json:"favorite_id"`
}

// AddFavorite saves a recipe. Saving the same recipe twice returns the existing favorite.
func (s *recipeService) AddFavorite(ctx context.Context, recipeID int64) (int64, error) {
	if recipeID <= 0 {
		return 0, fmt.Errorf("invalid recipe ID: %d", recipeID)
	}

	if err := requireSession(s.session); err != nil {
		return 0, err
	}

	var resp addFavoriteResponse
	if err := s.client.Post(ctx, FavoritesPath, &favoriteRequest{RecipeID: recipeID}, &resp); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return 0, fmt.Errorf("recipe not found: %d", recipeID)
		}
		return 0, fmt.Errorf("failed to add favorite: %w", err)
	}

	return resp.FavoriteID, nil
}

// RemoveFavorite removes a saved recipe. Removing a recipe that is not saved is not an error.
func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID int64) error {
	if recipeID <= 0 {
		return fmt.Errorf("invalid recipe ID: %d", recipeID)
	}

	if err := requireSession(s.session); err != nil {
		return err
	}

	if err := s.client.Delete(ctx, FavoritesPath, &favoriteRequest{RecipeID: recipeID}, nil); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}
