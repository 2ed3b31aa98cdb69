package cli

import (
	"klikk/web"

	"github.com/rohanthewiz/rweb"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Serves the login page at / and the registration page at /registration.
The login token is kept in the browser's jwt_token cookie.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := web.NewServer(rweb.ServerOptions{
			Address: cfg.WebAddr,
			Verbose: cfg.LogLevel == "debug",
		}, newAuthClient())
		return web.Run(srv, cfg.WebAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
