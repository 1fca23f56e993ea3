package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/cache"
	"github.com/tdnguyen/planboard/internal/config"
	"github.com/tdnguyen/planboard/internal/logging"
	"github.com/tdnguyen/planboard/internal/ui"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

var rootCmd = &cobra.Command{
	Use:          "planboard",
	Short:        "Terminal client for the planboard project tracker",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig is shared between the TUI and the export command
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runApp() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer log.Sync()

	// Warn about a token that is about to lapse before entering the
	// alternate screen, while stderr is still visible
	if info, err := api.InspectToken(cfg.APIToken); err == nil {
		if info.ExpiresSoon(24 * time.Hour) {
			fmt.Fprintf(os.Stderr, "warning: API token expires %s\n",
				info.ExpiresAt.Format(time.RFC1123))
		}
	}

	theme, err := config.LoadTheme(cfg.ThemeFile)
	if err != nil {
		return err
	}
	styles.ApplyOverride(theme)

	settings, err := cache.Open()
	if err != nil {
		return fmt.Errorf("open settings cache: %w", err)
	}
	defer settings.Close()

	client := api.New(cfg.APIBaseURL, cfg.APIToken, log)

	app := ui.NewApp(client, settings, cfg, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	app.SetSend(p.Send)

	log.Infow("starting", "base_url", cfg.APIBaseURL)
	_, runErr := p.Run()
	app.Close()

	if runErr != nil {
		return fmt.Errorf("run application: %w", runErr)
	}
	if err := app.FatalErr(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("session expired: API token was rejected, update API_TOKEN and restart")
		}
		return err
	}
	return nil
}
