package cli

import (
	"github.com/spf13/cobra"

	"taskra/internal/service"
)

func newProjectsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List all projects visible to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			projects, err := service.NewProjects(core).List(cmd.Context())
			if err != nil {
				return err
			}
			return app.output(projects, projectsTable(projects))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show KEY",
		Short: "Show one project's detail record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			project, err := service.NewProjects(core).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.output(project, projectTable(project))
		},
	})
	return cmd
}
