// Package commands provides the cobra commands behind the opencode-sync
// binaries. Each binary is a single root command; they share the global
// flags defined here.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/opencode-sync/internal/config"
	"github.com/opencode-ai/opencode-sync/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// globalFlags are available on every tool.
type globalFlags struct {
	printLogs bool
	logLevel  string
	envFile   string
}

func (g *globalFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&g.printLogs, "print-logs", false, "Print logs to stderr")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", "", "Read OPENCODE_*/XDG_* overrides from a dotenv file")
}

// resolve configures logging and turns env (plus --env-file) into Paths.
func (g *globalFlags) resolve(stderr io.Writer, env config.Env) (*config.Paths, error) {
	logging.Setup(stderr, g.printLogs, g.logLevel)

	if g.envFile != "" {
		var err error
		env, err = config.LoadEnvFile(env, g.envFile)
		if err != nil {
			return nil, err
		}
	}

	paths := config.Resolve(env)
	logging.Debug().
		Str("storage", paths.Storage).
		Str("config", paths.ConfigFile).
		Msg("resolved paths")
	return paths, nil
}

// newRoot builds a tool's root command. All output, including help, goes
// to stderr; only the export payload is written to stdout.
func newRoot(name, use, short, long string, stderr io.Writer, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(fmt.Sprintf("%s %s (%s)\n", name, Version, BuildTime))
	flags.register(cmd)
	return cmd
}

// Execute runs cmd and returns the process exit code. Errors are printed to
// stderr.
func Execute(cmd *cobra.Command, args []string, stderr io.Writer) int {
	// cobra falls back to os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		logging.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
