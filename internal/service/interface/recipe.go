package iface

import (
	"context"
	"time"
)

// Nutrition holds the per-serving nutrition estimate of a recipe
type Nutrition struct {
	Calories float64 `json:"calories,omitempty"`
	ProteinG float64 `json:"protein_g,omitempty"`
	FatG     float64 `json:"fat_g,omitempty"`
	CarbG    float64 `json:"carb_g,omitempty"`
}

// Recipe represents a generated recipe
type Recipe struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Ingredients []string   `json:"ingredients"`
	Steps       []string   `json:"steps"`
	Nutrition   *Nutrition `json:"nutrition,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Suggestion is the result of a recipe suggestion
type Suggestion struct {
	Recipe Recipe `json:"recipe"`
	// LatencyMS is reported by some backends, nil otherwise
	LatencyMS *int64 `json:"latency_ms,omitempty"`
}

// Favorite represents a saved recipe
type Favorite struct {
	ID        int64      `json:"id"`
	Recipe    Recipe     `json:"recipe"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// RecipeService defines the interface for recipe and favorites operations
type RecipeService interface {
	// Suggest generates a recipe from the given ingredients
	Suggest(ctx context.Context, ingredients []string) (*Suggestion, error)

	// ListFavorites returns the saved recipes, newest first
	ListFavorites(ctx context.Context) ([]Favorite, error)

	// AddFavorite saves a recipe and returns the favorite ID
	AddFavorite(ctx context.Context, recipeID int64) (int64, error)

	// RemoveFavorite removes a saved recipe
	RemoveFavorite(ctx context.Context, recipeID int64) error
}
