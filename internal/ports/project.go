package ports

// ProjectVersionPort reads the editor version a project was saved with.
type ProjectVersionPort interface {
	// DetectVersion returns (version, true, nil) when the project declares
	// a version and ("", false, nil) when it does not.
	DetectVersion(projectPath string) (string, bool, error)
}

// ProjectWorkspacePort discovers projects below a workspace root.
type ProjectWorkspacePort interface {
	FindProjects(root string) ([]string, error)
}
