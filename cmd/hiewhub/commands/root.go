package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rapheephat/hiewhub-tui/internal/api"
	"github.com/rapheephat/hiewhub-tui/internal/app"
	"github.com/rapheephat/hiewhub-tui/internal/logging"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/session"
	"github.com/rapheephat/hiewhub-tui/internal/store"
)

var (
	configPath string
	baseURL    string
	logFile    string
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hiewhub",
		Short: "Terminal storefront for HiewHub",
		Long: `hiewhub is a terminal client for the HiewHub marketplace:
browse the catalog, manage your cart and orders, chat with vendors,
and keep up with notifications, all without leaving the terminal.`,
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/hiewhub/config.yaml)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "override the API base URL")
	rootCmd.Flags().StringVar(&logFile, "log-file", logging.DefaultLogPath(), "log file (empty disables logging)")
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path and loads settings.
func loadConfig() (*model.AppConfig, error) {
	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The flag wins when passed explicitly; otherwise the config file,
	// falling back to the default path.
	if cmd.Flags().Changed("log-file") || cfg.Log.File == "" {
		cfg.Log.File = logFile
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logger.Sync()

	sess, err := session.Open()
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	st, err := store.NewSQLiteStore(store.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("opening catalog cache: %w", err)
	}
	defer st.Close()

	client := api.NewClient(cfg.API.BaseURL, sess, logger)
	services := app.NewServices(client)

	logger.Info("starting",
		zap.String("base_url", cfg.API.BaseURL),
		zap.Bool("session_active", sess.IsActive()),
	)

	program := tea.NewProgram(
		app.New(cfg, sess, st, services, logger),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
