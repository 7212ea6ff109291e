package cli

import (
	"github.com/spf13/cobra"

	"taskra/internal/model"
	"taskra/internal/service"
)

func newWorklogsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worklogs",
		Short: "List and record time entries on issues",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list ISSUE",
		Short: "List all worklogs on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			worklogs, err := service.NewWorklogs(core).List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.output(worklogs, worklogsTable(worklogs))
		},
	})

	var (
		timeSpent string
		comment   string
		started   string
	)
	add := &cobra.Command{
		Use:   "add ISSUE",
		Short: "Log work against an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			var startedAt *model.Time
			if started != "" {
				t, err := model.ParseTime(started)
				if err != nil {
					return err
				}
				startedAt = &t
			}
			worklog, err := service.NewWorklogs(core).Add(cmd.Context(), args[0], timeSpent, comment, startedAt)
			if err != nil {
				return err
			}
			return app.output(worklog, worklogsTable([]*model.Worklog{worklog}))
		},
	}
	add.Flags().StringVarP(&timeSpent, "time", "t", "", "time spent, e.g. \"2h 30m\" (required)")
	add.Flags().StringVarP(&comment, "comment", "c", "", "worklog comment")
	add.Flags().StringVar(&started, "started", "", "start timestamp (defaults to now on the server)")
	add.MarkFlagRequired("time")
	cmd.AddCommand(add)

	return cmd
}
