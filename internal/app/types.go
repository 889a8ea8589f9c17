package app

import "uvm/internal/types"

type InstallationSummary struct {
	Version    string
	Location   string
	Components []string
}

type ListRequest struct {
	Components bool
}

type ListResult struct {
	Installations []InstallationSummary
	Findings      []types.ScanFinding
}

type DetectRequest struct {
	ProjectPath string
}

type DetectResult struct {
	ProjectPath string
	Version     string
}

type LocateRequest struct {
	Version string
}

type LocateResult struct {
	Installation InstallationSummary
}

type InstallRequest struct {
	Version     string
	ProjectPath string
	Components  []string
}

type InstallResult struct {
	Installation InstallationSummary
	Hints        []string
}

type ProjectsRequest struct {
	Root string
}

// ProjectSummary describes one project found in a workspace. Location is
// empty when no installed editor matches the declared version.
type ProjectSummary struct {
	Path     string
	Version  string
	Declared bool
	Problem  string
	Location string
}

type ProjectsResult struct {
	Projects []ProjectSummary
}
