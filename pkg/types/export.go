package types

// ExportVersion is the format version written by the project exporter.
const ExportVersion = "1.0.0"

// ExportDocument is the backup payload shared by the export and import tools.
type ExportDocument struct {
	Version    string    `json:"version"`
	ExportedAt int64     `json:"exportedAt"`
	Projects   []Project `json:"projects"`
	// LocalStorage holds browser localStorage entries (opencode.* keys).
	// The exporter cannot read browser storage, so it is only present when a
	// user adds it to the backup by hand.
	LocalStorage map[string]string `json:"localStorage,omitempty"`
}

// MarshalJSON always emits projects as an array.
func (d ExportDocument) MarshalJSON() ([]byte, error) {
	type alias ExportDocument
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	return encode(alias(d))
}
