package commands

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/opencode-sync/internal/backup"
	"github.com/opencode-ai/opencode-sync/internal/config"
)

var errNoBackupArgument = errors.New("backup file argument required")

// NewImportCmd builds the opencode-import command.
func NewImportCmd(stderr io.Writer, env config.Env) *cobra.Command {
	var (
		flags globalFlags
		opts  backup.ImportOptions
	)

	cmd := newRoot("opencode-import", "opencode-import <backup-file.json>", "Import OpenCode projects and workspaces",
		`Import projects from a backup written by opencode-export.

Projects that already exist locally are skipped unless --merge is given, in
which case the stored record is replaced by the one from the backup. Only
time.updated is changed on import.

  opencode-import projects-backup.json
  opencode-import projects-backup.json --merge`,
		stderr, &flags)

	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cmd.Usage()
			return errNoBackupArgument
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	}

	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "Overwrite existing projects")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show what would be imported without writing anything")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		paths, err := flags.resolve(stderr, env)
		if err != nil {
			return err
		}

		_, err = backup.NewImporter(paths, stderr).Import(cmd.Context(), args[0], opts)
		return err
	}

	return cmd
}
