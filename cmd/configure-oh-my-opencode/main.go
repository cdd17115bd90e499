// Package main provides the entry point for configure-oh-my-opencode.
package main

import (
	"os"

	"github.com/opencode-ai/opencode-sync/internal/commands"
	"github.com/opencode-ai/opencode-sync/internal/config"
)

func main() {
	cmd := commands.NewConfigurePluginCmd(os.Stderr, config.FromOS())
	os.Exit(commands.Execute(cmd, os.Args[1:], os.Stderr))
}
