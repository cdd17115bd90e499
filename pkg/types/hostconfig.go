package types

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const pluginKey = "plugin"

// HostConfig is the OpenCode configuration file (opencode.json) as seen by
// tools that edit it. Only the plugin list is typed; every other key is kept
// as raw JSON, in file order, and written back untouched.
type HostConfig struct {
	Plugin []string

	hasPlugin bool
	fields    *rawFields
}

// NewHostConfig returns an empty configuration.
func NewHostConfig() *HostConfig {
	return &HostConfig{fields: orderedmap.New[string, json.RawMessage]()}
}

// HasPlugin reports whether name is already in the plugin list.
func (c *HostConfig) HasPlugin(name string) bool {
	for _, p := range c.Plugin {
		if p == name {
			return true
		}
	}
	return false
}

// AddPlugin appends name to the plugin list unless it is already present.
// It returns false when nothing changed.
func (c *HostConfig) AddPlugin(name string) bool {
	if c.HasPlugin(name) {
		return false
	}
	c.Plugin = append(c.Plugin, name)
	c.hasPlugin = true
	return true
}

// Get returns the raw value of a key other than plugin.
func (c *HostConfig) Get(key string) (json.RawMessage, bool) {
	if c.fields == nil {
		return nil, false
	}
	return c.fields.Get(key)
}

// Keys returns all top-level keys in file order.
func (c *HostConfig) Keys() []string {
	var keys []string
	if c.fields != nil {
		for pair := c.fields.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
	}
	if c.hasPlugin && (c.fields == nil || !c.hasField(pluginKey)) {
		keys = append(keys, pluginKey)
	}
	return keys
}

func (c *HostConfig) hasField(key string) bool {
	_, ok := c.fields.Get(key)
	return ok
}

// UnmarshalJSON parses a strict JSON object. Comments, trailing commas and
// non-object documents are rejected.
func (c *HostConfig) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if flat == nil {
		return fmt.Errorf("config must be a JSON object")
	}

	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return err
	}

	var plugins []string
	raw, ok := fields.Get(pluginKey)
	if ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &plugins); err != nil {
			return fmt.Errorf("invalid %q field: %w", pluginKey, err)
		}
	}

	c.Plugin = plugins
	c.hasPlugin = ok
	c.fields = fields
	return nil
}

// MarshalJSON writes the configuration back with the original key order.
// A plugin key that was not in the file is appended last.
func (c HostConfig) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, json.RawMessage]()
	if c.fields != nil {
		for pair := c.fields.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	if c.hasPlugin || len(c.Plugin) > 0 {
		plugins := c.Plugin
		if plugins == nil {
			plugins = []string{}
		}
		raw, err := encode(plugins)
		if err != nil {
			return nil, err
		}
		out.Set(pluginKey, raw)
	}
	return encodeFields(out)
}
