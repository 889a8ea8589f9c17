package ports

import "uvm/internal/types"

// ManifestPort inspects candidate installation directories.
type ManifestPort interface {
	// ReadManifest returns (zero, false, nil) when dir carries no manifest,
	// and a non-nil error when a manifest exists but cannot be read.
	ReadManifest(dir string) (types.Manifest, bool, error)

	// ReadComponents returns the raw component section of the manifest.
	ReadComponents(dir string) ([]string, error)
}
