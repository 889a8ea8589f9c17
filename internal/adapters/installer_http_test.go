package adapters

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvm/internal/types"
)

func tarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func newTestInstaller(url string) HTTPInstallerAdapter {
	installer := NewHTTPInstallerAdapter(url, 3, 5)
	installer.RetryDelay = time.Millisecond
	return installer
}

func TestHTTPInstallerAdapter_InstallsEditorAndComponents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2019.3.1f1/editor.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(tarGz(t, map[string]string{"Editor/Unity": "binary"}))
	})
	mux.HandleFunc("/2019.3.1f1/components/ios.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(tarGz(t, map[string]string{"Editor/Data/PlaybackEngines/iOSSupport/README": "ios"}))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	installer := newTestInstaller(server.URL)
	err := installer.Install(t.Context(), "2019.3.1f1", destination, []types.Component{types.ComponentIos})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(destination, "Editor", "Unity"))
	assert.FileExists(t, filepath.Join(destination, "Editor", "Data", "PlaybackEngines", "iOSSupport", "README"))
	manifest, ok, err := NewManifestFileAdapter().ReadManifest(destination)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2019.3.1f1", manifest.Version)
	assert.Equal(t, []string{"ios"}, manifest.Components)
}

func TestHTTPInstallerAdapter_AddsComponentsToExistingInstall(t *testing.T) {
	var editorHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/2019.3.1f1/editor.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		editorHits.Add(1)
		_, _ = w.Write(tarGz(t, map[string]string{"Editor/Unity": "binary"}))
	})
	mux.HandleFunc("/2019.3.1f1/components/android.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(tarGz(t, map[string]string{"Editor/Data/PlaybackEngines/AndroidPlayer/README": "android"}))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	require.NoError(t, NewManifestFileAdapter().WriteManifest(destination, types.Manifest{
		Version:    "2019.3.1f1",
		Components: []string{"webgl"},
	}))

	err := newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, []types.Component{types.ComponentAndroid})
	require.NoError(t, err)
	assert.Equal(t, int32(0), editorHits.Load())

	manifest, _, err := NewManifestFileAdapter().ReadManifest(destination)
	require.NoError(t, err)
	assert.Equal(t, []string{"android", "webgl"}, manifest.Components)
}

func TestHTTPInstallerAdapter_RejectsVersionMismatch(t *testing.T) {
	destination := t.TempDir()
	require.NoError(t, NewManifestFileAdapter().WriteManifest(destination, types.Manifest{Version: "2018.4.0f1"}))

	err := newTestInstaller("http://127.0.0.1:0").Install(t.Context(), "2019.3.1f1", destination, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination holds version 2018.4.0f1")
}

func TestHTTPInstallerAdapter_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(tarGz(t, map[string]string{"Editor/Unity": "binary"}))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	err := newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestHTTPInstallerAdapter_NotFoundIsPermanentAndCleansUp(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	err := newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download")
	assert.Equal(t, int32(1), hits.Load())
	_, statErr := os.Stat(destination)
	assert.True(t, os.IsNotExist(statErr))
}

func TestHTTPInstallerAdapter_RefusesUnmanagedDestination(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	editor := filepath.Join(destination, "Editor", "Unity")
	require.NoError(t, os.MkdirAll(filepath.Dir(editor), 0755))
	require.NoError(t, os.WriteFile(editor, []byte("hub editor"), 0644))

	err := newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "not managed by uvm")
	assert.Equal(t, int32(0), hits.Load())

	content, err := os.ReadFile(editor)
	require.NoError(t, err)
	assert.Equal(t, "hub editor", string(content))
}

func TestHTTPInstallerAdapter_FailedInstallKeepsEmptyDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2019.3.1f1/editor.tar.gz" {
			_, _ = w.Write(tarGz(t, map[string]string{"Editor/Unity": "binary"}))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	require.NoError(t, os.MkdirAll(destination, 0755))

	err := newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, []types.Component{types.ComponentIos})
	require.Error(t, err)

	info, err := os.Stat(destination)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	entries, err := os.ReadDir(destination)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHTTPInstallerAdapter_RejectsEscapingEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(tarGz(t, map[string]string{"../evil": "x"}))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	err := newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestHTTPInstallerAdapter_ArchiveCannotOverwriteManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(tarGz(t, map[string]string{ManifestFileName: "version: 1.0.0f1\n"}))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "2019.3.1f1")
	require.NoError(t, newTestInstaller(server.URL).Install(t.Context(), "2019.3.1f1", destination, nil))

	manifest, _, err := NewManifestFileAdapter().ReadManifest(destination)
	require.NoError(t, err)
	assert.Equal(t, "2019.3.1f1", manifest.Version)
}

func TestHTTPInstallerAdapter_RequiresBaseURLAndDestination(t *testing.T) {
	err := NewHTTPInstallerAdapter("", 0, 0).Install(t.Context(), "2019.3.1f1", t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installer base url is empty")

	err = NewHTTPInstallerAdapter("http://example.invalid", 0, 0).Install(t.Context(), "2019.3.1f1", " ", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install destination is empty")
}
