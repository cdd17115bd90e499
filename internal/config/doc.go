// Package config resolves where OpenCode keeps its data on disk.
//
// The sync tools never read the process environment ad hoc. main captures it
// once with FromOS (optionally overlaid with a dotenv file through
// LoadEnvFile), and Resolve turns that snapshot into a Paths value that is
// passed to every component:
//
//   - Storage: $OPENCODE_CONFIG_DIR/storage when set, otherwise
//     <XDG_DATA_HOME or ~/.local/share>/opencode/storage
//   - ConfigFile: $OPENCODE_CONFIG when set, otherwise
//     <XDG_CONFIG_HOME or ~/.config>/opencode/opencode.json
//
// Resolution is pure: nothing is created or checked for existence here.
//
// # Usage Example
//
//	env := config.FromOS()
//	paths := config.Resolve(env)
//	fmt.Println(paths.ProjectDir())
package config
