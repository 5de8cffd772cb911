package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

// newConfigInitCommand writes the effective configuration to disk so
// users have a file to edit instead of starting from the docs.
func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := configPath
			if path == "" {
				path = model.DefaultConfigPath()
			}
			if err := model.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
