package config

import (
	"path/filepath"
)

// AppName is the directory name OpenCode uses under the XDG base directories.
const AppName = "opencode"

// Environment variables that relocate OpenCode data.
const (
	EnvConfigDir  = "OPENCODE_CONFIG_DIR" // storage root is <dir>/storage
	EnvConfigFile = "OPENCODE_CONFIG"     // path to opencode.json
	EnvDataHome   = "XDG_DATA_HOME"
	EnvConfigHome = "XDG_CONFIG_HOME"
)

// Paths contains the resolved locations the sync tools read and write.
type Paths struct {
	Data       string // ~/.local/share/opencode
	Config     string // ~/.config/opencode
	Storage    string // <Data>/storage, or $OPENCODE_CONFIG_DIR/storage
	ConfigFile string // <Config>/opencode.json, or $OPENCODE_CONFIG
}

// Resolve computes Paths from env. It performs no I/O and never fails.
// OpenCode uses ~/.config and ~/.local/share on every platform, Windows
// included, so there is no APPDATA handling here.
func Resolve(env Env) *Paths {
	p := &Paths{
		Data:   filepath.Join(env.getOrDefault(EnvDataHome, filepath.Join(env.Home, ".local", "share")), AppName),
		Config: filepath.Join(env.getOrDefault(EnvConfigHome, filepath.Join(env.Home, ".config")), AppName),
	}

	if dir := env.Get(EnvConfigDir); dir != "" {
		p.Storage = filepath.Join(dir, "storage")
	} else {
		p.Storage = filepath.Join(p.Data, "storage")
	}

	if file := env.Get(EnvConfigFile); file != "" {
		p.ConfigFile = file
	} else {
		p.ConfigFile = filepath.Join(p.Config, AppName+".json")
	}

	return p
}

// ProjectDir returns the directory holding one JSON file per project.
func (p *Paths) ProjectDir() string {
	return filepath.Join(p.Storage, "project")
}

// ProjectFile returns the path of the record for a project ID.
func (p *Paths) ProjectFile(id string) string {
	return filepath.Join(p.ProjectDir(), id+".json")
}
