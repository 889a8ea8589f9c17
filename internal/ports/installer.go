package ports

import (
	"context"

	"uvm/internal/types"
)

// InstallerPort places an editor version and its components on disk.
// Implementations own downloading, unpacking, their own retries and the
// cleanup of a half-written destination.
type InstallerPort interface {
	Install(ctx context.Context, version string, destination string, components []types.Component) error
}
