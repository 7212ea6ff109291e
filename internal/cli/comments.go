package cli

import (
	"github.com/spf13/cobra"

	"taskra/internal/model"
	"taskra/internal/service"
)

func newCommentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List and add issue comments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list ISSUE",
		Short: "List all comments on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			comments, err := service.NewComments(core).List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.output(comments, commentsTable(comments))
		},
	})

	var body string
	add := &cobra.Command{
		Use:   "add ISSUE",
		Short: "Add a comment to an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := app.services()
			if err != nil {
				return err
			}
			comment, err := service.NewComments(core).Add(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return app.output(comment, commentsTable([]*model.Comment{comment}))
		},
	}
	add.Flags().StringVarP(&body, "body", "b", "", "comment text (required)")
	add.MarkFlagRequired("body")
	cmd.AddCommand(add)

	return cmd
}
