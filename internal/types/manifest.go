package types

// Manifest is the on-disk descriptor that marks a directory as an editor
// installation. It lives at the root of the installation directory.
type Manifest struct {
	Version    string   `yaml:"version"`
	Components []string `yaml:"components,omitempty"`
}

// ProjectVersionFile mirrors ProjectSettings/ProjectVersion.txt.
type ProjectVersionFile struct {
	EditorVersion             string `yaml:"m_EditorVersion"`
	EditorVersionWithRevision string `yaml:"m_EditorVersionWithRevision,omitempty"`
}

// ScanFinding is a non-fatal observation made while scanning search roots.
// Err carries the typed failure so callers can match it with errors.Is.
type ScanFinding struct {
	Location string
	Reason   string
	Err      error
}
