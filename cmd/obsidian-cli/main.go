// Package main is the entry point for the obsidian-cli application.
//
// It runs the command tree from internal/cli and maps the returned error onto
// the process exit code shared with the MCP server's exit_code field.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"obsidian-cli/internal/cli"
	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/vault"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(vault.ExitCode(err))
	}
}
