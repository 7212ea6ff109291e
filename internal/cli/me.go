package cli

import (
	"github.com/spf13/cobra"

	"taskra/internal/service"
)

func newMeCommand(app *App) *cobra.Command {
	var permissions []string
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			users := service.NewUsers(core)
			if cmd.Flags().Changed("permissions") {
				keys := make([]string, 0, len(permissions))
				for _, k := range permissions {
					if k != "" {
						keys = append(keys, k)
					}
				}
				perms, err := users.Permissions(cmd.Context(), keys)
				if err != nil {
					return err
				}
				return app.output(perms, permissionsTable(perms))
			}
			me, err := users.Me(cmd.Context())
			if err != nil {
				return err
			}
			return app.output(me, userTable(me))
		},
	}
	cmd.Flags().StringSliceVar(&permissions, "permissions", nil,
		"show permission grants instead of the profile (no value checks the standard set)")
	cmd.Flags().Lookup("permissions").NoOptDefVal = ""
	return cmd
}
