package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Projects lists every project under a workspace root with the editor it
// declares and, when installed, where that editor lives.
func (s Service) Projects(ctx context.Context, req ProjectsRequest) (ProjectsResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return ProjectsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	paths, err := s.Workspace.FindProjects(root)
	if err != nil {
		return ProjectsResult{}, err
	}
	if _, err := s.refresh(ctx); err != nil {
		return ProjectsResult{}, err
	}

	result := ProjectsResult{}
	for _, path := range paths {
		summary := ProjectSummary{Path: path}
		version, ok, err := s.Resolver.ResolveProject(ctx, path)
		switch {
		case err != nil:
			log.Ctx(ctx).Warn().Err(err).Str("project", path).Msg("failed to detect project version")
			summary.Problem = err.Error()
		case ok:
			summary.Declared = true
			summary.Version = version.String()
			if inst, found := s.Registry.Lookup(version); found {
				summary.Location = inst.Location()
			}
		}
		result.Projects = append(result.Projects, summary)
	}
	return result, nil
}
