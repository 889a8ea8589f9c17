package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvm/internal/types"
)

func TestManifestFileAdapter_ReadManifest(t *testing.T) {
	dir := t.TempDir()
	content := "version: 2019.3.1f1\ncomponents:\n  - webgl\n  - ios\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0644))

	adapter := NewManifestFileAdapter()
	manifest, ok, err := adapter.ReadManifest(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2019.3.1f1", manifest.Version)

	components, err := adapter.ReadComponents(dir)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"webgl", "ios"}, components); diff != "" {
		t.Fatalf("unexpected components (-want +got):\n%s", diff)
	}
}

func TestManifestFileAdapter_MissingManifestIsNotAnError(t *testing.T) {
	adapter := NewManifestFileAdapter()
	_, ok, err := adapter.ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManifestFileAdapter_CorruptManifest(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "invalid yaml", content: "version: [unterminated\n", wantMsg: "failed to parse installation manifest"},
		{name: "missing version", content: "components:\n  - ios\n", wantMsg: "installation manifest has no version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(tt.content), 0644))

			_, ok, err := NewManifestFileAdapter().ReadManifest(dir)
			require.Error(t, err)
			assert.False(t, ok)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestManifestFileAdapter_WriteManifestRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2020.1.0f1")
	adapter := NewManifestFileAdapter()

	require.NoError(t, adapter.WriteManifest(dir, types.Manifest{
		Version:    "2020.1.0f1",
		Components: []string{"android", "ios"},
	}))

	manifest, ok, err := adapter.ReadManifest(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2020.1.0f1", manifest.Version)
	assert.Equal(t, []string{"android", "ios"}, manifest.Components)
	assert.NoFileExists(t, filepath.Join(dir, ManifestFileName+".tmp"))
}

func TestManifestFileAdapter_WriteManifestRequiresVersion(t *testing.T) {
	err := NewManifestFileAdapter().WriteManifest(t.TempDir(), types.Manifest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest version is empty")
}

func TestManifestFileAdapter_ReadComponentsWithoutManifest(t *testing.T) {
	_, err := NewManifestFileAdapter().ReadComponents(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
