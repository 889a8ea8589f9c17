package adapters

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uvm/internal/ports"
)

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindProjects returns every directory below root that carries a project
// version file. Projects are not searched for nested projects.
func (a WorkspaceAdapter) FindProjects(root string) ([]string, error) {
	var projects []string
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldSkipWorkspaceDir(d.Name()) {
			return filepath.SkipDir
		}
		if _, err := os.Stat(ProjectVersionPath(path)); err == nil {
			projects = append(projects, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}
	return projects, nil
}

func shouldSkipWorkspaceDir(name string) bool {
	switch name {
	case "Library", "Temp", "Logs", "obj", "Build", "Builds", ".git", "node_modules":
		return true
	default:
		return false
	}
}

var _ ports.ProjectWorkspacePort = WorkspaceAdapter{}
