package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

// SuggestCommand represents the suggest command
type SuggestCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewSuggestCommand creates a new suggest command
func NewSuggestCommand(root *RootCommand) *SuggestCommand {
	s := &SuggestCommand{
		root: root,
	}

	s.cmd = &cobra.Command{
		Use:   "suggest <ingredient>...",
		Short: "Suggest a recipe from ingredients",
		Long: `Suggest a recipe from the ingredients you have.

Ingredients can be given as separate arguments or as a comma separated list.
The recipe ID in the output can be saved with 'smartchef favorites add'.

Examples:
  smartchef suggest egg tomato rice
  smartchef suggest "chicken, garlic, lemon"
  smartchef suggest egg tomato -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: s.Run,
	}

	return s
}

// Command returns the underlying cobra command
func (s *SuggestCommand) Command() *cobra.Command {
	return s.cmd
}

// Run executes the suggest command
func (s *SuggestCommand) Run(cmd *cobra.Command, args []string) error {
	recipeService := s.root.Container().RecipeService()

	suggestion, err := recipeService.Suggest(cmd.Context(), args)
	if err != nil {
		return err
	}

	switch s.root.OutputFormat() {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(suggestion)
	default:
		printRecipe(&suggestion.Recipe)
		if suggestion.LatencyMS != nil {
			fmt.Printf("\nGenerated in %d ms\n", *suggestion.LatencyMS)
		}
		return nil
	}
}

// printRecipe writes a human readable recipe to stdout
func printRecipe(r *iface.Recipe) {
	fmt.Printf("🍳 %s\n", r.Title)
	if r.ID != 0 {
		fmt.Printf("   ID: %d\n", r.ID)
	}

	if len(r.Ingredients) > 0 {
		fmt.Println("\nIngredients:")
		for _, ing := range r.Ingredients {
			fmt.Printf("  - %s\n", ing)
		}
	}

	if len(r.Steps) > 0 {
		fmt.Println("\nSteps:")
		for i, step := range r.Steps {
			fmt.Printf("  %d. %s\n", i+1, strings.TrimSpace(step))
		}
	}

	if n := r.Nutrition; n != nil {
		fmt.Println("\nNutrition (per serving):")
		fmt.Printf("  Calories: %.0f kcal  Protein: %.1f g  Fat: %.1f g  Carbs: %.1f g\n",
			n.Calories, n.ProteinG, n.FatG, n.CarbG)
	}
}
