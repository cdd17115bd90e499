package types

import "encoding/json"

// Project represents a workspace project as persisted by OpenCode under
// storage/project/<id>.json. Keys this type does not model are kept and
// written back unchanged, at every level.
type Project struct {
	ID        string           `json:"id"`
	Worktree  string           `json:"worktree"`
	VCS       string           `json:"vcs,omitempty"` // "git" or empty
	Name      string           `json:"name,omitempty"`
	Icon      *ProjectIcon     `json:"icon,omitempty"`
	Commands  *ProjectCommands `json:"commands,omitempty"`
	Time      ProjectTime      `json:"time"`
	Sandboxes []string         `json:"sandboxes"`

	raw *rawFields
}

// ProjectIcon describes how a project is displayed in the sidebar.
type ProjectIcon struct {
	URL      string `json:"url,omitempty"`
	Override string `json:"override,omitempty"`
	Color    string `json:"color,omitempty"`

	raw *rawFields
}

// ProjectCommands holds per-project commands.
type ProjectCommands struct {
	Start string `json:"start,omitempty"`

	raw *rawFields
}

// ProjectTime contains project timestamps in epoch milliseconds.
type ProjectTime struct {
	Created     int64  `json:"created"`
	Updated     int64  `json:"updated"`
	Initialized *int64 `json:"initialized,omitempty"`

	raw *rawFields
}

// DisplayName returns the project name, falling back to its ID.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// UnmarshalJSON decodes a project and normalizes a missing sandbox list to
// an empty one so it is written back as [] rather than null.
func (p *Project) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type alias Project
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeFields(data)
	if err != nil {
		return err
	}
	if decoded.Sandboxes == nil {
		decoded.Sandboxes = []string{}
	}
	*p = Project(decoded)
	p.raw = raw
	return nil
}

// MarshalJSON always emits sandboxes as an array.
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	if p.Sandboxes == nil {
		p.Sandboxes = []string{}
	}
	typed, err := encode(alias(p))
	if err != nil {
		return nil, err
	}
	return overlay(p.raw, typed)
}

func (i *ProjectIcon) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type alias ProjectIcon
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeFields(data)
	if err != nil {
		return err
	}
	*i = ProjectIcon(decoded)
	i.raw = raw
	return nil
}

func (i ProjectIcon) MarshalJSON() ([]byte, error) {
	type alias ProjectIcon
	typed, err := encode(alias(i))
	if err != nil {
		return nil, err
	}
	return overlay(i.raw, typed)
}

func (c *ProjectCommands) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type alias ProjectCommands
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeFields(data)
	if err != nil {
		return err
	}
	*c = ProjectCommands(decoded)
	c.raw = raw
	return nil
}

func (c ProjectCommands) MarshalJSON() ([]byte, error) {
	type alias ProjectCommands
	typed, err := encode(alias(c))
	if err != nil {
		return nil, err
	}
	return overlay(c.raw, typed)
}

func (t *ProjectTime) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type alias ProjectTime
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeFields(data)
	if err != nil {
		return err
	}
	*t = ProjectTime(decoded)
	t.raw = raw
	return nil
}

func (t ProjectTime) MarshalJSON() ([]byte, error) {
	type alias ProjectTime
	typed, err := encode(alias(t))
	if err != nil {
		return nil, err
	}
	return overlay(t.raw, typed)
}
