// Package cmd provides the command-line interface for the SmartChef CLI.
// It contains all cobra commands and their implementations.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/smartchef-cli/internal/config"
	"github.com/smartchef/smartchef-cli/internal/di"
	"github.com/smartchef/smartchef-cli/internal/logging"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
)

// RootCommand represents the root CLI command
type RootCommand struct {
	container *di.Container
	cmd       *cobra.Command

	// Subcommands
	loginCmd     *LoginCommand
	registerCmd  *RegisterCommand
	logoutCmd    *LogoutCommand
	statusCmd    *StatusCommand
	suggestCmd   *SuggestCommand
	favoritesCmd *FavoritesCommand
	premiumCmd   *PremiumCommand
}

// NewRootCommand creates a new root command
func NewRootCommand() *RootCommand {
	r := &RootCommand{}

	r.cmd = &cobra.Command{
		Use:   "smartchef",
		Short: "SmartChef CLI - Recipe suggestions from the ingredients you have",
		Long: `SmartChef CLI is a command-line client for the SmartChef service.

Tell SmartChef what is in your fridge and it suggests a recipe. Save the ones
you like as favorites, and upgrade to premium for more suggestions.

To get started, run:
  smartchef register  - Create an account
  smartchef login     - Sign in to your account
  smartchef suggest egg tomato - Get a recipe`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.initialize(cmd)
		},
	}

	// Global flags
	r.cmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json)")
	r.cmd.PersistentFlags().String("api-url", "", "SmartChef API URL (env SMARTCHEF_API_URL)")
	r.cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env SMARTCHEF_LOG_LEVEL)")

	// Initialize subcommands (will be wired after container init)
	r.loginCmd = NewLoginCommand(r)
	r.registerCmd = NewRegisterCommand(r)
	r.logoutCmd = NewLogoutCommand(r)
	r.statusCmd = NewStatusCommand(r)
	r.suggestCmd = NewSuggestCommand(r)
	r.favoritesCmd = NewFavoritesCommand(r)
	r.premiumCmd = NewPremiumCommand(r)

	// Add subcommands
	r.cmd.AddCommand(r.loginCmd.Command())
	r.cmd.AddCommand(r.registerCmd.Command())
	r.cmd.AddCommand(r.logoutCmd.Command())
	r.cmd.AddCommand(r.statusCmd.Command())
	r.cmd.AddCommand(r.suggestCmd.Command())
	r.cmd.AddCommand(r.favoritesCmd.Command())
	r.cmd.AddCommand(r.premiumCmd.Command())

	return r
}

// initialize loads settings, builds the logger and sets up the DI container
func (r *RootCommand) initialize(cmd *cobra.Command) error {
	// Skip if container is already set (e.g., for testing)
	if r.container != nil {
		return nil
	}

	dir, err := config.DefaultDir()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Flags override the settings file and environment only when set
	v := config.NewViper(dir)
	if err := v.BindPFlag(config.KeyAPIURL, r.cmd.PersistentFlags().Lookup("api-url")); err != nil {
		return err
	}
	if err := v.BindPFlag(config.KeyLogLevel, r.cmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	settings, err := config.LoadSettings(v)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	logger := logging.New(settings.LogLevel, os.Stderr)

	r.container, err = di.NewContainer(cmd.Context(), settings, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Container returns the DI container
func (r *RootCommand) Container() *di.Container {
	return r.container
}

// SetContainer sets a custom container (for testing)
func (r *RootCommand) SetContainer(c *di.Container) {
	r.container = c
}

// OutputFormat returns the value of the global --output flag
func (r *RootCommand) OutputFormat() string {
	format, _ := r.cmd.PersistentFlags().GetString("output")
	return format
}

// Execute is the main entry point for the CLI
func Execute() error {
	root := NewRootCommand()
	return root.Execute()
}
