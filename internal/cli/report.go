package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskra/internal/logger"
	"taskra/internal/report"
	"taskra/internal/service"
)

func newReportCommand(app *App) *cobra.Command {
	var filters report.Filters
	cmd := &cobra.Command{
		Use:   "report KEY...",
		Short: "Cross-project issue report",
		Long: "Fetches each project's detail record and its filtered issues, in the " +
			"order given. A project that cannot be resolved is reported as a failed " +
			"entry without aborting the rest.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			builder := report.NewBuilder(service.NewProjects(core), service.NewIssues(core), logger.GetLogger())
			rep, err := builder.Build(cmd.Context(), args, filters)
			if err != nil {
				return err
			}
			return app.renderReport(rep)
		},
	}
	cmd.Flags().StringSliceVar(&filters.Status, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringVar(&filters.Assignee, "assignee", "", "filter by assignee")
	cmd.Flags().StringVar(&filters.Reporter, "reporter", "", "filter by reporter")
	cmd.Flags().StringVar(&filters.CreatedAfter, "since", "", "only issues created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.CreatedBefore, "until", "", "only issues created on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.SortBy, "sort", "created", "issue sort field")
	cmd.Flags().StringVar(&filters.SortOrder, "order", "DESC", "issue sort order (ASC or DESC)")
	return cmd
}

// renderReport prints one section per requested project, in request order.
func (a *App) renderReport(rep *report.Report) error {
	for _, key := range rep.Keys {
		entry := rep.Entry(key)
		if entry.Err != nil {
			fmt.Fprintf(os.Stdout, "== %s: FAILED: %v\n\n", key, entry.Err.Err)
			continue
		}
		fmt.Fprintf(os.Stdout, "== %s: %s (%d issues)\n", key, entry.Project.Name, len(entry.Issues))
		if err := a.output(entry.Issues, issuesTable(entry.Issues)); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
