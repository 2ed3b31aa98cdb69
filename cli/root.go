// Package cli holds the klikk command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"klikk/config"
	"klikk/models"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
)

// cfg is loaded once per invocation, before any command runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "klikk",
	Short: "Klikk login and registration client",
	Long: `Klikk signs users in to the Klikk auth API and registers new accounts.

Available commands:
  serve     Run the web front end
  tui       Run the terminal front end
  devapi    Run a local development auth API
  status    Show whether a login token is stored
  logout    Remove the stored login token

Settings come from KLIKK_* environment variables or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger.SetLogLevel(cfg.LogLevel)
		return nil
	},
}

// Execute runs the command tree until it finishes or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newAuthClient builds the client for the configured auth API
func newAuthClient() *models.AuthClient {
	client := models.NewAuthClient(cfg.APIURL, models.NewHTTPClient(cfg.HTTPTimeout))
	logger.Debug("Auth API", "url", client.BaseURL())
	return client
}
