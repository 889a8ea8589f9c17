package ports

// PlatformLocatorPort knows where editor installations live on this host.
type PlatformLocatorPort interface {
	// Locate returns the canonical install directory for version and the
	// search roots that may contain installations. The destination's parent
	// is always the first root.
	Locate(version string) (destination string, roots []string, err error)
}
