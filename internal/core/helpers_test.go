package core

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"uvm/internal/adapters"
	"uvm/internal/types"
)

func writeInstallation(t *testing.T, dir string, version string, components ...string) string {
	t.Helper()
	require.NoError(t, adapters.NewManifestFileAdapter().WriteManifest(dir, types.Manifest{
		Version:    version,
		Components: components,
	}))
	return dir
}

func writeCorruptInstallation(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, adapters.ManifestFileName), []byte("version: [\n"), 0644))
	return dir
}

// countingManifests wraps the file adapter and counts component reads.
type countingManifests struct {
	adapters.ManifestFileAdapter
	mu    sync.Mutex
	reads int
}

func (c *countingManifests) ReadComponents(dir string) ([]string, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return c.ManifestFileAdapter.ReadComponents(dir)
}

func (c *countingManifests) componentReads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

func installationWith(location string, version string, components ...types.Component) *Installation {
	return NewInstallation(location, MustParseVersion(version), types.NewComponentSet(components...))
}
