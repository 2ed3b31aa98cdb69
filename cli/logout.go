package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored login token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openSessionStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
