package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

// StatusCommand represents the status command
type StatusCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewStatusCommand creates a new status command
func NewStatusCommand(root *RootCommand) *StatusCommand {
	s := &StatusCommand{
		root: root,
	}

	s.cmd = &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Long: `Show whether you are logged in, who you are and when your access token expires.

The profile is fetched from the server, which refreshes an expired token.

Examples:
  smartchef status
  smartchef status -o json`,
		Args: cobra.NoArgs,
		RunE: s.Run,
	}

	return s
}

// Command returns the underlying cobra command
func (s *StatusCommand) Command() *cobra.Command {
	return s.cmd
}

// Run executes the status command
func (s *StatusCommand) Run(cmd *cobra.Command, args []string) error {
	authService := s.root.Container().AuthService()

	status, err := authService.Status(cmd.Context())
	if err != nil {
		return err
	}

	switch s.root.OutputFormat() {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	default:
		return s.outputText(status)
	}
}

func (s *StatusCommand) outputText(status *iface.SessionStatus) error {
	if !status.Authenticated {
		fmt.Println("Not logged in.")
		fmt.Println("\nLog in with: smartchef login")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "State:\t%s\n", status.State)
	if status.Profile != nil {
		fmt.Fprintf(w, "Username:\t%s\n", status.Profile.Username)
		fmt.Fprintf(w, "Email:\t%s\n", status.Profile.Email)
	}
	if status.UserID != "" {
		fmt.Fprintf(w, "User ID:\t%s\n", status.UserID)
	}
	if status.ExpiresAt != nil {
		expiry := status.ExpiresAt.Local().Format(time.RFC3339)
		if status.Expired {
			expiry += " (expired)"
		}
		fmt.Fprintf(w, "Token expires:\t%s\n", expiry)
	}
	if status.ProfileError != "" {
		fmt.Fprintf(w, "Profile:\tunavailable (%s)\n", status.ProfileError)
	}

	return w.Flush()
}
