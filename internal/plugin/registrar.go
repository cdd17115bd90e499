// Package plugin registers plugins in the OpenCode configuration file.
package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/opencode-ai/opencode-sync/internal/logging"
	"github.com/opencode-ai/opencode-sync/internal/report"
	"github.com/opencode-ai/opencode-sync/internal/storage"
	"github.com/opencode-ai/opencode-sync/pkg/types"
)

// DefaultName is the plugin configure-oh-my-opencode registers.
const DefaultName = "oh-my-opencode"

// ErrUnparseableConfig means the existing config file is not strict JSON.
// The file is left untouched.
var ErrUnparseableConfig = errors.New("cannot parse config file")

// Result describes what Register did.
type Result int

const (
	// ResultAdded means the plugin was appended and the file rewritten.
	ResultAdded Result = iota
	// ResultAlreadyEnabled means the plugin was present and nothing was written.
	ResultAlreadyEnabled
)

func (r Result) String() string {
	switch r {
	case ResultAdded:
		return "added"
	case ResultAlreadyEnabled:
		return "already-enabled"
	default:
		return "unknown"
	}
}

// Registrar edits the plugin list of one config file.
type Registrar struct {
	configPath string
	report     *report.Reporter
}

// NewRegistrar creates a registrar for the config file at configPath.
// Status lines go to out, tagged with tag.
func NewRegistrar(configPath string, out io.Writer, tag string) *Registrar {
	return &Registrar{
		configPath: configPath,
		report:     report.New(out, tag),
	}
}

// Register ensures name is in the plugin list. It never rewrites a file it
// could not parse: comment-bearing (JSONC) or malformed configs are refused
// with ErrUnparseableConfig.
func (r *Registrar) Register(ctx context.Context, name string) (Result, error) {
	rep := r.report
	rep.Infof("Checking config at: %s", r.configPath)

	configDir := filepath.Dir(r.configPath)
	if _, err := os.Stat(configDir); errors.Is(err, os.ErrNotExist) {
		rep.Infof("Creating config directory: %s", configDir)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	cfg, err := r.load(name)
	if err != nil {
		return 0, err
	}

	if !cfg.AddPlugin(name) {
		rep.Infof("'%s' is already enabled.", name)
		return ResultAlreadyEnabled, nil
	}

	rep.Infof("Adding '%s' to plugins...", name)

	data, err := storage.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(r.configPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write config: %w", err)
	}

	logging.Info().Str("plugin", name).Str("config", r.configPath).Msg("plugin registered")
	rep.Donef("Configuration updated.")
	return ResultAdded, nil
}

// load reads the config strictly. A missing file yields an empty config.
func (r *Registrar) load(name string) (*types.HostConfig, error) {
	cfg := types.NewHostConfig()

	data, err := os.ReadFile(r.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		rep := r.report
		rep.Warnf("Failed to parse existing config.")
		rep.Warnf("Error: %v", err)
		if looksLikeJSONC(data) {
			rep.Warnf("The file appears to contain comments or trailing commas (JSONC); it will not be rewritten.")
		}
		rep.Errorf("ABORTING: Cannot parse %s. Please add '%s' to 'plugin' list manually.",
			filepath.Base(r.configPath), name)
		return nil, fmt.Errorf("%w: %s: %v", ErrUnparseableConfig, r.configPath, err)
	}

	return cfg, nil
}

// looksLikeJSONC reports whether data only fails strict parsing because of
// comments or trailing commas.
func looksLikeJSONC(data []byte) bool {
	stripped := jsonc.ToJSON(data)
	if string(stripped) == string(data) {
		return false
	}
	cfg := types.NewHostConfig()
	return json.Unmarshal(stripped, cfg) == nil
}
