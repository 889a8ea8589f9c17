package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceAdapter_FindProjects(t *testing.T) {
	root := t.TempDir()
	gameA := filepath.Join(root, "games", "a")
	gameB := filepath.Join(root, "games", "b")
	writeProjectVersion(t, gameA, "m_EditorVersion: 2019.3.1f1\n")
	writeProjectVersion(t, gameB, "m_EditorVersion: 2020.1.0f1\n")
	// Random directories without project settings are ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))

	projects, err := NewWorkspaceAdapter().FindProjects(root)
	require.NoError(t, err)
	assert.Equal(t, []string{gameA, gameB}, projects)
}

func TestWorkspaceAdapter_SkipsGeneratedDirs(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"Library", "Temp", ".git", "node_modules"} {
		writeProjectVersion(t, filepath.Join(root, dir, "nested"), "m_EditorVersion: 2019.1.0f1\n")
	}
	real := filepath.Join(root, "real")
	writeProjectVersion(t, real, "m_EditorVersion: 2019.1.0f1\n")

	projects, err := NewWorkspaceAdapter().FindProjects(root)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Contains(t, projects[0], "real")
}

func TestWorkspaceAdapter_DoesNotDescendIntoProjects(t *testing.T) {
	root := t.TempDir()
	writeProjectVersion(t, root, "m_EditorVersion: 2019.1.0f1\n")
	writeProjectVersion(t, filepath.Join(root, "Assets", "Embedded"), "m_EditorVersion: 2018.4.0f1\n")

	projects, err := NewWorkspaceAdapter().FindProjects(root)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, projects)
}

func TestWorkspaceAdapter_EmptyRootErrors(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindProjects("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace root is empty")
}

func TestWorkspaceAdapter_NonExistentRootErrors(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindProjects("/nonexistent/path/that/does/not/exist")
	require.Error(t, err)
}

func TestWorkspaceAdapter_EmptyWorkspaceReturnsNil(t *testing.T) {
	projects, err := NewWorkspaceAdapter().FindProjects(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, projects)
}
