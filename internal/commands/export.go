package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/opencode-sync/internal/backup"
	"github.com/opencode-ai/opencode-sync/internal/config"
)

// NewExportCmd builds the opencode-export command.
func NewExportCmd(stdout, stderr io.Writer, env config.Env) *cobra.Command {
	var (
		flags  globalFlags
		output string
	)

	cmd := newRoot("opencode-export", "opencode-export", "Export OpenCode projects and workspaces",
		`Export all OpenCode project and workspace settings to a JSON backup.
Session and conversation history is not included.

The backup is written to stdout unless --output is given; progress messages
always go to stderr, so redirecting stdout yields a clean JSON file:

  opencode-export > projects-backup.json
  opencode-export --output projects-backup.json`,
		stderr, &flags)
	cmd.Args = cobra.NoArgs

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the backup to this file instead of stdout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		paths, err := flags.resolve(stderr, env)
		if err != nil {
			return err
		}

		_, err = backup.NewExporter(paths, stdout, stderr).Export(cmd.Context(), output)
		return err
	}

	return cmd
}
