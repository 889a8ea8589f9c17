// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// TarGz builds a gzip-compressed tar archive holding files.
func TarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, name := range names {
		body := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// WriteEditor creates root/version holding an installation manifest.
func WriteEditor(t *testing.T, root string, version string, components ...string) string {
	t.Helper()
	dir := filepath.Join(root, version)
	require.NoError(t, os.MkdirAll(dir, 0755))
	data, err := yaml.Marshal(map[string]any{
		"version":    version,
		"components": components,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "installation.yaml"), data, 0644))
	return dir
}

// WriteProject creates a project directory declaring version.
func WriteProject(t *testing.T, dir string, version string) string {
	t.Helper()
	settings := filepath.Join(dir, "ProjectSettings")
	require.NoError(t, os.MkdirAll(settings, 0755))
	content := "m_EditorVersion: " + version + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(settings, "ProjectVersion.txt"), []byte(content), 0644))
	return dir
}

// Mirror is an archive server laid out the way the HTTP installer expects.
type Mirror struct {
	*httptest.Server
	mu       sync.Mutex
	requests map[string]int
}

// NewMirror serves an editor archive for every version and a component
// archive for every listed component.
func NewMirror(t *testing.T, versions map[string][]string) *Mirror {
	t.Helper()
	mirror := &Mirror{requests: map[string]int{}}
	mux := http.NewServeMux()
	for version, components := range versions {
		editor := TarGz(t, map[string]string{"Editor/Unity": "editor " + version})
		mux.HandleFunc("/"+version+"/editor.tar.gz", mirror.serve(editor))
		for _, component := range components {
			archive := TarGz(t, map[string]string{"PlaybackEngines/" + component + "/module": component})
			mux.HandleFunc("/"+version+"/components/"+component+".tar.gz", mirror.serve(archive))
		}
	}
	mirror.Server = httptest.NewServer(mux)
	t.Cleanup(mirror.Close)
	return mirror
}

func (m *Mirror) serve(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests[r.URL.Path]++
		m.mu.Unlock()
		_, _ = w.Write(body)
	}
}

// Requests returns how often path was downloaded.
func (m *Mirror) Requests(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[path]
}
