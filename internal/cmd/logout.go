package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LogoutCommand represents the logout command
type LogoutCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewLogoutCommand creates a new logout command
func NewLogoutCommand(root *RootCommand) *LogoutCommand {
	l := &LogoutCommand{
		root: root,
	}

	l.cmd = &cobra.Command{
		Use:   "logout",
		Short: "Log out from SmartChef",
		Long: `Log out from SmartChef and clear stored tokens.

Logging out when no session exists is not an error.

Example:
  smartchef logout`,
		Args: cobra.NoArgs,
		RunE: l.Run,
	}

	return l
}

// Command returns the underlying cobra command
func (l *LogoutCommand) Command() *cobra.Command {
	return l.cmd
}

// Run executes the logout command
func (l *LogoutCommand) Run(cmd *cobra.Command, args []string) error {
	authService := l.root.Container().AuthService()

	wasLoggedIn := authService.IsLoggedIn()

	if err := authService.Logout(cmd.Context()); err != nil {
		return err
	}

	if !wasLoggedIn {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Println("✓ Logged out from SmartChef")
	return nil
}
