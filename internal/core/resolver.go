package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uvm/internal/ports"
	"uvm/internal/types"
)

// ResolverCore decides whether the registry already satisfies a request.
type ResolverCore struct {
	Registry *Registry
	Projects ports.ProjectVersionPort
}

// ResolutionResult is one of three outcomes, told apart by Status:
// Satisfied carries Installation; NeedsInstall carries the concrete Version
// of the closest installation and the Missing components; NotFound carries
// nothing.
type ResolutionResult struct {
	Status       types.ResolutionStatus
	Installation *Installation
	Version      Version
	Missing      types.ComponentSet
}

func NewResolverCore(registry *Registry, projects ports.ProjectVersionPort) ResolverCore {
	return ResolverCore{
		Registry: registry,
		Projects: projects,
	}
}

// ResolveProject reads the version a project requires. A project that does
// not declare one yields (zero, false, nil); no default is substituted.
func (r ResolverCore) ResolveProject(ctx context.Context, projectPath string) (Version, bool, error) {
	if r.Projects == nil {
		return Version{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a project version port")
	}
	if strings.TrimSpace(projectPath) == "" {
		return Version{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is empty")
	}
	text, ok, err := r.Projects.DetectVersion(projectPath)
	if err != nil {
		return Version{}, false, err
	}
	if !ok {
		log.Ctx(ctx).Debug().Str("project", projectPath).Msg("project declares no editor version")
		return Version{}, false, nil
	}
	version, err := ParseVersion(text)
	if err != nil {
		return Version{}, false, err
	}
	return version, true, nil
}

// Resolve is a pure function of the registry snapshot at call time. The
// only disk access is the first Components call on a scanned installation,
// which loads its component list from the manifest once.
func (r ResolverCore) Resolve(requested Version, components types.ComponentSet) ResolutionResult {
	if r.Registry == nil {
		return ResolutionResult{Status: types.ResolutionNotFound}
	}
	found, ok := r.Registry.Lookup(requested)
	if !ok {
		return ResolutionResult{Status: types.ResolutionNotFound}
	}
	missing := components.Difference(found.Components())
	if missing.Len() == 0 {
		return ResolutionResult{
			Status:       types.ResolutionSatisfied,
			Installation: found,
			Version:      found.Version(),
		}
	}
	return ResolutionResult{
		Status:       types.ResolutionNeedsInstall,
		Installation: found,
		Version:      found.Version(),
		Missing:      missing,
	}
}
