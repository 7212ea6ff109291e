package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskra/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage taskra configuration",
	}
	cmd.AddCommand(newAccountCommand(app))
	return cmd
}

func newAccountCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage tracker accounts",
	}

	var (
		addURL     string
		addEmail   string
		addToken   string
		addDefault bool
	)
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add or replace an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := config.Account{
				Name:  args[0],
				URL:   addURL,
				Email: addEmail,
				Token: addToken,
			}
			if err := app.cfg.AddAccount(account, addDefault); err != nil {
				return err
			}
			if err := app.cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "account %q saved\n", args[0])
			return nil
		},
	}
	add.Flags().StringVar(&addURL, "url", "", "tracker base URL, e.g. https://example.atlassian.net (required)")
	add.Flags().StringVar(&addEmail, "email", "", "account email (omit for bearer-token auth)")
	add.Flags().StringVar(&addToken, "token", "", "API token (required)")
	add.Flags().BoolVar(&addDefault, "default", false, "make this the default account")
	add.MarkFlagRequired("url")
	add.MarkFlagRequired("token")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := Table{Header: []string{"NAME", "URL", "EMAIL", "DEFAULT"}}
			for _, a := range app.cfg.Accounts {
				def := ""
				if a.Name == app.cfg.DefaultAccount {
					def = "*"
				}
				t.Rows = append(t.Rows, []string{a.Name, a.URL, a.Email, def})
			}
			return renderTable(os.Stdout, t)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use NAME",
		Short: "Set the default account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.cfg.Account(args[0]); err != nil {
				return err
			}
			app.cfg.DefaultAccount = args[0]
			return app.cfg.Save()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.RemoveAccount(args[0]); err != nil {
				return err
			}
			return app.cfg.Save()
		},
	})

	return cmd
}
