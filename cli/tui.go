package cli

import (
	"os"
	"path/filepath"

	"klikk/tui"

	"github.com/rohanthewiz/serr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal front end",
	Long: `Opens the login screen in the terminal; ctrl+r switches to registration.
The login token is kept in the configured session store, so it survives
restarts until it expires or you log out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openSessionStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		// The terminal belongs to the UI while it runs
		logFile, err := openLogFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer logFile.Close()
		logrus.SetOutput(logFile)
		defer logrus.SetOutput(os.Stderr)

		return tui.Run(cmd.Context(), store, newAuthClient())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, serr.Wrap(err, "failed to create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open log file")
	}
	return f, nil
}
