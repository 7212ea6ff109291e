package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskra/internal/cache"
	"taskra/internal/logger"
)

func newCacheCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.cfg.CacheDir()
			if err != nil {
				return err
			}
			store, err := cache.New(dir, app.cfg.Cache.TTL, logger.GetLogger())
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "cache cleared")
			return nil
		},
	})

	return cmd
}
