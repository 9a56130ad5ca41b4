package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

// FavoritesCommand represents the favorites command group
type FavoritesCommand struct {
	root *RootCommand
	cmd  *cobra.Command

	// Subcommands
	listCmd   *FavoritesListCommand
	addCmd    *FavoritesAddCommand
	removeCmd *FavoritesRemoveCommand
}

// NewFavoritesCommand creates a new favorites command
func NewFavoritesCommand(root *RootCommand) *FavoritesCommand {
	f := &FavoritesCommand{
		root: root,
	}

	f.cmd = &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite recipes",
		Long: `Manage your saved recipes.

Recipes returned by 'smartchef suggest' can be saved by ID and listed later.`,
	}

	// Initialize subcommands
	f.listCmd = NewFavoritesListCommand(f)
	f.addCmd = NewFavoritesAddCommand(f)
	f.removeCmd = NewFavoritesRemoveCommand(f)

	// Add subcommands
	f.cmd.AddCommand(f.listCmd.Command())
	f.cmd.AddCommand(f.addCmd.Command())
	f.cmd.AddCommand(f.removeCmd.Command())

	return f
}

// Command returns the underlying cobra command
func (f *FavoritesCommand) Command() *cobra.Command {
	return f.cmd
}

// Root returns the parent root command
func (f *FavoritesCommand) Root() *RootCommand {
	return f.root
}

// parseRecipeID parses a positional recipe ID argument
func parseRecipeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe ID: %s", arg)
	}
	return id, nil
}

// FavoritesListCommand represents the favorites list command
type FavoritesListCommand struct {
	parent *FavoritesCommand
	cmd    *cobra.Command
}

// NewFavoritesListCommand creates a new favorites list command
func NewFavoritesListCommand(parent *FavoritesCommand) *FavoritesListCommand {
	l := &FavoritesListCommand{
		parent: parent,
	}

	l.cmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List favorite recipes",
		Long: `List your saved recipes, newest first.

Examples:
  smartchef favorites list
  smartchef favorites list -o json`,
		Args: cobra.NoArgs,
		RunE: l.Run,
	}

	return l
}

// Command returns the underlying cobra command
func (l *FavoritesListCommand) Command() *cobra.Command {
	return l.cmd
}

// Run executes the favorites list command
func (l *FavoritesListCommand) Run(cmd *cobra.Command, args []string) error {
	recipeService := l.parent.Root().Container().RecipeService()

	favorites, err := recipeService.ListFavorites(cmd.Context())
	if err != nil {
		return err
	}

	switch l.parent.Root().OutputFormat() {
	case "json":
		return l.outputJSON(favorites)
	default:
		return l.outputTable(favorites)
	}
}

// outputJSON outputs favorites in JSON format
func (l *FavoritesListCommand) outputJSON(favorites []iface.Favorite) error {
	if favorites == nil {
		favorites = []iface.Favorite{}
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(favorites)
}

// outputTable outputs favorites in table format
func (l *FavoritesListCommand) outputTable(favorites []iface.Favorite) error {
	if len(favorites) == 0 {
		fmt.Println("No favorites yet.")
		fmt.Println("\nSave a recipe with: smartchef favorites add <recipe-id>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECIPE ID\tTITLE\tSAVED")
	fmt.Fprintln(w, "---------\t-----\t-----")

	for _, f := range favorites {
		saved := "-"
		if f.CreatedAt != nil {
			saved = f.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", f.Recipe.ID, f.Recipe.Title, saved)
	}

	return w.Flush()
}

// FavoritesAddCommand represents the favorites add command
type FavoritesAddCommand struct {
	parent *FavoritesCommand
	cmd    *cobra.Command
}

// NewFavoritesAddCommand creates a new favorites add command
func NewFavoritesAddCommand(parent *FavoritesCommand) *FavoritesAddCommand {
	a := &FavoritesAddCommand{
		parent: parent,
	}

	a.cmd = &cobra.Command{
		Use:   "add <recipe-id>",
		Short: "Save a recipe",
		Long: `Save a recipe to your favorites.

Saving a recipe that is already a favorite is not an error.

Example:
  smartchef favorites add 42`,
		Args: cobra.ExactArgs(1),
		RunE: a.Run,
	}

	return a
}

// Command returns the underlying cobra command
func (a *FavoritesAddCommand) Command() *cobra.Command {
	return a.cmd
}

// Run executes the favorites add command
func (a *FavoritesAddCommand) Run(cmd *cobra.Command, args []string) error {
	recipeID, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}

	recipeService := a.parent.Root().Container().RecipeService()

	if _, err := recipeService.AddFavorite(cmd.Context(), recipeID); err != nil {
		return err
	}

	fmt.Printf("✓ Recipe %d saved to favorites\n", recipeID)
	return nil
}

// FavoritesRemoveCommand represents the favorites remove command
type FavoritesRemoveCommand struct {
	parent *FavoritesCommand
	cmd    *cobra.Command
}

// NewFavoritesRemoveCommand creates a new favorites remove command
func NewFavoritesRemoveCommand(parent *FavoritesCommand) *FavoritesRemoveCommand {
	r := &FavoritesRemoveCommand{
		parent: parent,
	}

	r.cmd = &cobra.Command{
		Use:     "remove <recipe-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a saved recipe",
		Long: `Remove a recipe from your favorites.

Examples:
  smartchef favorites remove 42
  smartchef favorites remove 42 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: r.Run,
	}

	r.cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return r
}

// Command returns the underlying cobra command
func (r *FavoritesRemoveCommand) Command() *cobra.Command {
	return r.cmd
}

// Run executes the favorites remove command
func (r *FavoritesRemoveCommand) Run(cmd *cobra.Command, args []string) error {
	recipeID, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}

	recipeService := r.parent.Root().Container().RecipeService()

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		var confirm bool
		if err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Remove recipe %d from favorites?", recipeID),
			Default: false,
		}, &confirm); err != nil {
			return err
		}

		if !confirm {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := recipeService.RemoveFavorite(cmd.Context(), recipeID); err != nil {
		return err
	}

	fmt.Printf("✓ Recipe %d removed from favorites\n", recipeID)
	return nil
}
