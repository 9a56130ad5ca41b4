package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

// RegisterCommand represents the register command
type RegisterCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewRegisterCommand creates a new register command
func NewRegisterCommand(root *RootCommand) *RegisterCommand {
	r := &RegisterCommand{
		root: root,
	}

	r.cmd = &cobra.Command{
		Use:   "register",
		Short: "Create a SmartChef account",
		Long: `Create a new SmartChef account.

If the server signs you in right away, your session is saved. Otherwise run
'smartchef login' afterwards.

Examples:
  smartchef register
  smartchef register -u alice -e alice@example.com`,
		Args: cobra.NoArgs,
		RunE: r.Run,
	}

	r.cmd.Flags().StringP("username", "u", "", "Username")
	r.cmd.Flags().StringP("email", "e", "", "Email address")
	r.cmd.Flags().String("password", "", "Password (prompted when omitted)")

	return r
}

// Command returns the underlying cobra command
func (r *RegisterCommand) Command() *cobra.Command {
	return r.cmd
}

// Run executes the register command
func (r *RegisterCommand) Run(cmd *cobra.Command, args []string) error {
	authService := r.root.Container().AuthService()

	input := &iface.RegisterInput{}
	input.Username, _ = cmd.Flags().GetString("username")
	input.Email, _ = cmd.Flags().GetString("email")
	input.Password, _ = cmd.Flags().GetString("password")

	if input.Username == "" {
		if err := survey.AskOne(&survey.Input{
			Message: "Username:",
		}, &input.Username, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if input.Email == "" {
		if err := survey.AskOne(&survey.Input{
			Message: "Email:",
		}, &input.Email, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if input.Password == "" {
		if err := survey.AskOne(&survey.Password{
			Message: "Password:",
		}, &input.Password, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	result, err := authService.Register(cmd.Context(), input)
	if err != nil {
		return err
	}

	if result.SignedIn {
		fmt.Printf("✓ Account created. Logged in as %s\n", input.Username)
		return nil
	}

	fmt.Println("✓ Account created.")
	fmt.Println("\nLog in with: smartchef login -u " + input.Username)
	return nil
}
