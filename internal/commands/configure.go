package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/opencode-sync/internal/config"
	"github.com/opencode-ai/opencode-sync/internal/plugin"
)

const configureName = "configure-oh-my-opencode"

// NewConfigurePluginCmd builds the configure-oh-my-opencode command.
func NewConfigurePluginCmd(stderr io.Writer, env config.Env) *cobra.Command {
	var flags globalFlags

	cmd := newRoot(configureName, configureName, "Enable the oh-my-opencode plugin",
		`Add "oh-my-opencode" to the plugin list of the OpenCode config file
($OPENCODE_CONFIG, or <XDG_CONFIG_HOME or ~/.config>/opencode/opencode.json).

Other settings are preserved. Running it again is a no-op. A config file that
is not strict JSON (for example one with comments) is never rewritten; add
the plugin by hand instead.`,
		stderr, &flags)
	cmd.Args = cobra.NoArgs

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		paths, err := flags.resolve(stderr, env)
		if err != nil {
			return err
		}

		_, err = plugin.NewRegistrar(paths.ConfigFile, stderr, configureName).
			Register(cmd.Context(), plugin.DefaultName)
		return err
	}

	return cmd
}
