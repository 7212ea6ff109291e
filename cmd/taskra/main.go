// Command taskra is a command-line client for a Jira-style issue tracker.
package main

import (
	"os"

	"taskra/internal/cli"
	"taskra/internal/logger"
)

func main() {
	code := cli.Execute()
	if logger.Log != nil {
		_ = logger.Sync()
	}
	os.Exit(code)
}
