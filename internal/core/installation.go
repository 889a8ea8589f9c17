package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"uvm/internal/ports"
	"uvm/internal/types"
)

// Installation is a snapshot of one editor installation on disk. The
// component set is read from the manifest on first access and cached for
// the life of the snapshot; a re-scan produces a new Installation.
type Installation struct {
	location string
	version  Version

	once       sync.Once
	loader     func() (types.ComponentSet, error)
	components types.ComponentSet
}

// NewInstallation builds a snapshot whose components are already known.
func NewInstallation(location string, version Version, components types.ComponentSet) *Installation {
	inst := &Installation{location: location, version: version}
	inst.once.Do(func() {
		inst.components = components.Clone()
	})
	return inst
}

func newScannedInstallation(location string, version Version, manifests ports.ManifestPort) *Installation {
	return &Installation{
		location: location,
		version:  version,
		loader: func() (types.ComponentSet, error) {
			raw, err := manifests.ReadComponents(location)
			if err != nil {
				return nil, err
			}
			return manifestComponents(location, raw), nil
		},
	}
}

func (i *Installation) Location() string {
	return i.location
}

func (i *Installation) Version() Version {
	return i.version
}

// Components returns a copy of the installed component set.
func (i *Installation) Components() types.ComponentSet {
	i.once.Do(func() {
		components, err := i.loader()
		if err != nil {
			log.Warn().Err(err).Str("location", i.location).Msg("failed to read installed components")
			components = types.ComponentSet{}
		}
		i.components = components
	})
	return i.components.Clone()
}

// Equal compares identity only: location and version.
func (i *Installation) Equal(other *Installation) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.location == other.location && i.version.Equal(other.version)
}

func (i *Installation) String() string {
	return i.version.String() + " (" + i.location + ")"
}

// manifestComponents drops names this build does not know about; a newer
// installer may have written them.
func manifestComponents(location string, raw []string) types.ComponentSet {
	set := types.ComponentSet{}
	for _, name := range raw {
		component, err := ParseComponent(name)
		if err != nil {
			log.Debug().Str("location", location).Str("component", name).Msg("ignoring unknown component")
			continue
		}
		set.Add(component)
	}
	return set
}
