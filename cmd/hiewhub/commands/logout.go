package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapheephat/hiewhub-tui/internal/session"
)

// NewLogoutCommand creates the logout command, which clears the stored
// session token without starting the TUI.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.Open()
			if err != nil {
				return fmt.Errorf("opening session store: %w", err)
			}
			if !sess.IsActive() {
				fmt.Println("No active session.")
				return nil
			}
			if err := sess.Clear(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}
