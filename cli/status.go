package cli

import (
	"fmt"

	"klikk/models"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a login token is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openSessionStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		token, ok := store.Get()
		if !ok {
			fmt.Fprintln(out, "Not logged in")
			return nil
		}

		fmt.Fprintln(out, "Logged in")
		if info, ok := models.DescribeToken(token); ok {
			if info.Name != "" {
				fmt.Fprintf(out, "  name:    %s\n", info.Name)
			}
			if info.Email != "" {
				fmt.Fprintf(out, "  email:   %s\n", info.Email)
			}
			if !info.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "  expires: %s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
