package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// LoginCommand represents the login command
type LoginCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewLoginCommand creates a new login command
func NewLoginCommand(root *RootCommand) *LoginCommand {
	l := &LoginCommand{
		root: root,
	}

	l.cmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in to SmartChef",
		Long: `Sign in to SmartChef with your username and password.

Missing values are prompted for interactively. After a successful login your
tokens are stored locally and refreshed automatically when they expire.

Examples:
  smartchef login
  smartchef login -u alice`,
		Args: cobra.NoArgs,
		RunE: l.Run,
	}

	l.cmd.Flags().StringP("username", "u", "", "Username")
	l.cmd.Flags().String("password", "", "Password (prompted when omitted)")

	return l
}

// Command returns the underlying cobra command
func (l *LoginCommand) Command() *cobra.Command {
	return l.cmd
}

// Run executes the login command
func (l *LoginCommand) Run(cmd *cobra.Command, args []string) error {
	authService := l.root.Container().AuthService()

	if authService.IsLoggedIn() {
		return fmt.Errorf("already logged in. Use 'smartchef logout' first to log out")
	}

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	if username == "" {
		if err := survey.AskOne(&survey.Input{
			Message: "Username:",
		}, &username, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if password == "" {
		if err := survey.AskOne(&survey.Password{
			Message: "Password:",
		}, &password, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if err := authService.Login(cmd.Context(), username, password); err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s\n", username)
	return nil
}
