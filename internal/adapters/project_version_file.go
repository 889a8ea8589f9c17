package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"uvm/internal/ports"
	"uvm/internal/types"
)

// ProjectVersionFileAdapter reads ProjectSettings/ProjectVersion.txt.
type ProjectVersionFileAdapter struct{}

func NewProjectVersionFileAdapter() ProjectVersionFileAdapter {
	return ProjectVersionFileAdapter{}
}

func ProjectVersionPath(projectPath string) string {
	return filepath.Join(projectPath, "ProjectSettings", "ProjectVersion.txt")
}

func (a ProjectVersionFileAdapter) DetectVersion(projectPath string) (string, bool, error) {
	if strings.TrimSpace(projectPath) == "" {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is empty")
	}
	info, err := os.Stat(projectPath)
	if err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("project path not found").
			WithCause(err)
	}
	if !info.IsDir() {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is not a directory")
	}
	data, err := os.ReadFile(ProjectVersionPath(projectPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read project version file").
			WithCause(err)
	}
	var file types.ProjectVersionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse project version file").
			WithCause(err)
	}
	version := strings.TrimSpace(file.EditorVersion)
	if version == "" {
		return "", false, nil
	}
	return version, true, nil
}

var _ ports.ProjectVersionPort = ProjectVersionFileAdapter{}
