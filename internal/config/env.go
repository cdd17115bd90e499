package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env is a snapshot of the variables path resolution depends on. It is
// captured once at startup so the rest of the program never reads the
// process environment directly.
type Env struct {
	Vars map[string]string
	Home string
}

// FromOS captures the current process environment and home directory.
func FromOS() Env {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = vars["HOME"]
	}

	return Env{Vars: vars, Home: home}
}

// Get returns the value of key, or "" if unset.
func (e Env) Get(key string) string {
	return e.Vars[key]
}

// getOrDefault returns the variable value or a default when unset or empty.
func (e Env) getOrDefault(key, defaultValue string) string {
	if value := e.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// With returns a copy of e with key set to value.
func (e Env) With(key, value string) Env {
	vars := make(map[string]string, len(e.Vars)+1)
	for k, v := range e.Vars {
		vars[k] = v
	}
	vars[key] = value
	return Env{Vars: vars, Home: e.Home}
}

// LoadEnvFile overlays the variables defined in a dotenv file onto env.
// Values from the file win. The process environment is not modified.
func LoadEnvFile(env Env, path string) (Env, error) {
	fileVars, err := godotenv.Read(path)
	if err != nil {
		return env, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	out := env
	for k, v := range fileVars {
		out = out.With(k, v)
	}
	if home := fileVars["HOME"]; home != "" {
		out.Home = home
	}
	return out, nil
}
