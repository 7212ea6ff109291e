// Package cli wires the cobra command tree over the service layer. It
// owns flag parsing, account selection and output formatting; all data
// retrieval goes through internal/service.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskra/internal/cache"
	"taskra/internal/config"
	"taskra/internal/logger"
	"taskra/internal/service"
	"taskra/internal/transport"
)

const Version = "0.2.0"

// App carries the per-invocation state shared by all commands.
type App struct {
	cfg *config.Config

	accountName string
	noCache     bool
	debug       bool
	format      string

	core *service.Core
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	app := &App{}
	root := newRootCommand(app)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskra",
		Short:         "Command-line client for a Jira-style issue tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			app.cfg = cfg
			level := cfg.LogLevel
			if app.debug {
				level = "debug"
			}
			return logger.Init(level)
		},
	}

	root.PersistentFlags().StringVarP(&app.accountName, "account", "a", "", "account name (default: configured default account)")
	root.PersistentFlags().BoolVar(&app.noCache, "no-cache", false, "bypass the local result cache")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&app.format, "format", "f", "table", "output format: table, json or internal")

	root.AddCommand(
		newProjectsCommand(app),
		newIssueCommand(app),
		newIssuesCommand(app),
		newWorklogsCommand(app),
		newCommentsCommand(app),
		newReportCommand(app),
		newMeCommand(app),
		newConfigCommand(app),
		newCacheCommand(app),
	)
	return root
}

// services resolves the selected account and builds the shared service
// core on first use.
func (a *App) services() (*service.Core, error) {
	if a.core != nil {
		return a.core, nil
	}

	account, err := a.cfg.Account(a.accountName)
	if err != nil {
		return nil, err
	}

	log := logger.GetLogger()
	client := transport.NewHTTPClient(account.URL, account.Email, account.Token, 0, log)

	var store *cache.Store
	if !a.noCache {
		dir, err := a.cfg.CacheDir()
		if err != nil {
			return nil, err
		}
		store, err = cache.New(dir, a.cfg.Cache.TTL, log)
		if err != nil {
			return nil, err
		}
	}

	a.core = service.NewCore(client, store, a.cfg.PageSize, log)
	return a.core, nil
}
