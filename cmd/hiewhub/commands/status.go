package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapheephat/hiewhub-tui/internal/session"
	"github.com/rapheephat/hiewhub-tui/internal/store"
)

// NewStatusCommand creates the status command: a non-interactive dump
// of the effective configuration and session state.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and session state without the TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("API base URL:   %s\n", cfg.API.BaseURL)
			fmt.Printf("Chat interval:  %ds\n", cfg.Sync.ChatIntervalSec)
			fmt.Printf("Badge interval: %ds\n", cfg.Sync.BadgeIntervalSec)
			fmt.Printf("Catalog cache:  %s\n", store.DefaultDBPath())

			sess, err := session.Open()
			if err != nil {
				return fmt.Errorf("opening session store: %w", err)
			}
			if !sess.IsActive() {
				fmt.Println("Session:        none")
				return nil
			}

			claims := sess.Decode()
			if claims == nil {
				fmt.Println("Session:        active (claims unreadable)")
				return nil
			}
			fmt.Printf("Session:        %s", claims.Email)
			if claims.Role != "" {
				fmt.Printf(" (%s)", claims.Role)
			}
			if !claims.ExpiresAt.IsZero() {
				fmt.Printf(", expires %s", claims.ExpiresAt.Format("2006-01-02 15:04"))
			}
			fmt.Println()
			return nil
		},
	}
}
