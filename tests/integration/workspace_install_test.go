package integration

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvm/internal/app"
	"uvm/tests/testutil"
)

// TestWorkspaceInstallFlow walks a workspace, installs every editor its
// projects need and checks the workspace is then fully served:
//
//	projects -> install per project -> projects
func TestWorkspaceInstallFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	mirror := testutil.NewMirror(t, map[string][]string{
		"2019.3.1f1": {"webgl"},
		"2020.1.0f1": nil,
	})
	installRoot := t.TempDir()
	workspace := t.TempDir()
	game := testutil.WriteProject(t, filepath.Join(workspace, "game"), "2019.3.1f1")
	tool := testutil.WriteProject(t, filepath.Join(workspace, "tool"), "2020.1.0f1")
	testutil.WriteProject(t, filepath.Join(workspace, "game", "Library", "cached"), "2017.1.0f1")

	service, err := app.NewService(app.Config{
		InstallRoot:      installRoot,
		InstallerBaseURL: mirror.URL,
		InstallerRetries: 1,
		HostOS:           "linux",
	})
	require.NoError(t, err)

	before, err := service.Projects(t.Context(), app.ProjectsRequest{Root: workspace})
	require.NoError(t, err)
	require.Len(t, before.Projects, 2)
	for _, project := range before.Projects {
		assert.True(t, project.Declared)
		assert.Empty(t, project.Location)
	}

	installed, err := service.Install(t.Context(), app.InstallRequest{ProjectPath: game, Components: []string{"WebGL"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"webgl"}, installed.Installation.Components)
	_, err = service.Install(t.Context(), app.InstallRequest{ProjectPath: tool})
	require.NoError(t, err)

	after, err := service.Projects(t.Context(), app.ProjectsRequest{Root: workspace})
	require.NoError(t, err)
	want := []app.ProjectSummary{
		{Path: game, Version: "2019.3.1f1", Declared: true, Location: filepath.Join(installRoot, "2019.3.1f1")},
		{Path: tool, Version: "2020.1.0f1", Declared: true, Location: filepath.Join(installRoot, "2020.1.0f1")},
	}
	if diff := cmp.Diff(want, after.Projects); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}

	listed, err := service.List(t.Context(), app.ListRequest{})
	require.NoError(t, err)
	require.Len(t, listed.Installations, 2)
	assert.Equal(t, "2019.3.1f1", listed.Installations[0].Version)
}
