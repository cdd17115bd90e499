// Package main provides the entry point for opencode-export.
package main

import (
	"os"

	"github.com/opencode-ai/opencode-sync/internal/commands"
	"github.com/opencode-ai/opencode-sync/internal/config"
)

func main() {
	cmd := commands.NewExportCmd(os.Stdout, os.Stderr, config.FromOS())
	os.Exit(commands.Execute(cmd, os.Args[1:], os.Stderr))
}
