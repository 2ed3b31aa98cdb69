package cli

import (
	"klikk/models"
	"klikk/web"
	"klikk/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/spf13/cobra"
)

var devapiCmd = &cobra.Command{
	Use:   "devapi",
	Short: "Run a local development auth API",
	Long: `Runs a stand-in for the hosted auth API with the same endpoints:
POST /api/login and POST /api/register. Accounts live in memory unless
KLIKK_DEVAPI_DB names a database file. Point KLIKK_API_URL at it to use it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := models.OpenUserRegistry(cfg.DevAPIDBPath)
		if err != nil {
			return err
		}
		defer users.Close()

		handlers, err := api.NewHandlers(users, []byte(cfg.DevAPISecret))
		if err != nil {
			return err
		}

		srv := web.NewDevAPIServer(rweb.ServerOptions{
			Address: cfg.DevAPIAddr,
			Verbose: cfg.LogLevel == "debug",
		}, handlers, cfg.DevAPIRateLimit)

		logger.Info("Klikk dev API starting", "address", cfg.DevAPIAddr)
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(devapiCmd)
}
