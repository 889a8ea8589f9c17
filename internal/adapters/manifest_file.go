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

// ManifestFileName is the descriptor written at the root of every
// installation.
const ManifestFileName = "installation.yaml"

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) ReadManifest(dir string) (types.Manifest, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Manifest{}, false, nil
		}
		return types.Manifest{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read installation manifest").
			WithCause(err)
	}
	manifest, err := decodeManifest(data)
	if err != nil {
		return types.Manifest{}, false, err
	}
	return manifest, true, nil
}

func (a ManifestFileAdapter) ReadComponents(dir string) ([]string, error) {
	manifest, ok, err := a.ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("installation manifest not found")
	}
	return manifest.Components, nil
}

// WriteManifest replaces the manifest in dir.
func (a ManifestFileAdapter) WriteManifest(dir string, manifest types.Manifest) error {
	if strings.TrimSpace(manifest.Version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest version is empty")
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode installation manifest").
			WithCause(err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create installation directory").
			WithCause(err)
	}
	path := filepath.Join(dir, ManifestFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write installation manifest").
			WithCause(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write installation manifest").
			WithCause(err)
	}
	return nil
}

func decodeManifest(data []byte) (types.Manifest, error) {
	var manifest types.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse installation manifest").
			WithCause(err)
	}
	if strings.TrimSpace(manifest.Version) == "" {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("installation manifest has no version")
	}
	return manifest, nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
