package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskra/internal/model"
	"taskra/internal/report"
	"taskra/internal/service"
)

func newIssueCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Work with a single issue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Show one issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			issue, err := service.NewIssues(core).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.output(issue, issuesTable([]*model.Issue{issue}))
		},
	})

	var (
		createProject string
		createSummary string
		createBody    string
		createType    string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			issue, err := service.NewIssues(core).Create(cmd.Context(), &model.IssueCreate{
				Fields: model.IssueCreateFields{
					Project:     model.ProjectRef{Key: createProject},
					Summary:     createSummary,
					Description: createBody,
					IssueType:   model.IssueTypeRef{Name: createType},
				},
			})
			if err != nil {
				return err
			}
			return app.output(issue, issuesTable([]*model.Issue{issue}))
		},
	}
	create.Flags().StringVarP(&createProject, "project", "p", "", "project key (required)")
	create.Flags().StringVarP(&createSummary, "summary", "s", "", "issue summary (required)")
	create.Flags().StringVar(&createBody, "description", "", "issue description")
	create.Flags().StringVarP(&createType, "type", "t", "Task", "issue type name")
	cmd.AddCommand(create)

	return cmd
}

func newIssuesCommand(app *App) *cobra.Command {
	var (
		jql      string
		project  string
		status   []string
		assignee string
		reporter string
		since    string
		until    string
	)
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Search issues with a JQL query or filter flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			query := jql
			if query == "" {
				if project == "" {
					return fmt.Errorf("either --jql or --project is required")
				}
				filters := report.Filters{
					Status:        status,
					Assignee:      assignee,
					Reporter:      reporter,
					CreatedAfter:  since,
					CreatedBefore: until,
				}
				query = filters.JQL(project)
			}
			issues, err := service.NewIssues(core).Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			return app.output(issues, issuesTable(issues))
		},
	}
	cmd.Flags().StringVar(&jql, "jql", "", "raw JQL query (overrides filter flags)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project key to search in")
	cmd.Flags().StringSliceVar(&status, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assignee")
	cmd.Flags().StringVar(&reporter, "reporter", "", "filter by reporter")
	cmd.Flags().StringVar(&since, "since", "", "only issues created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "only issues created on or before this date (YYYY-MM-DD)")
	return cmd
}
