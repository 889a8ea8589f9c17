package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uvm/internal/core"
)

func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	requested, projectVersion, err := s.requestedVersion(ctx, req)
	if err != nil {
		return InstallResult{}, err
	}
	components, err := core.ParseComponents(req.Components)
	if err != nil {
		return InstallResult{}, err
	}
	expanded, err := s.Policy.Apply(components)
	if err != nil {
		return InstallResult{}, err
	}
	hints := installHints(requested, projectVersion, components, expanded)

	if _, err := s.refresh(ctx); err != nil {
		return InstallResult{}, err
	}
	destination, _, err := s.Locator.Locate(requested.String())
	if err != nil {
		return InstallResult{}, err
	}
	assert.NotEmpty(ctx, destination, "install destination must be set")

	inst, err := s.Orchestrator.EnsureInstalled(ctx, requested, expanded, destination)
	s.flushMetrics(ctx)
	if err != nil {
		return InstallResult{}, err
	}
	log.Ctx(ctx).Debug().Str("installation", inst.String()).Msg("install request satisfied")
	return InstallResult{
		Installation: summarize(inst, true),
		Hints:        hints,
	}, nil
}

// requestedVersion returns the version to install and, when a project was
// given, the version that project declares.
func (s Service) requestedVersion(ctx context.Context, req InstallRequest) (core.Version, core.Version, error) {
	text := strings.TrimSpace(req.Version)
	projectPath := strings.TrimSpace(req.ProjectPath)
	if text == "" && projectPath == "" {
		return core.Version{}, core.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version or project path is required")
	}

	var projectVersion core.Version
	if projectPath != "" {
		detected, ok, err := s.Resolver.ResolveProject(ctx, projectPath)
		if err != nil {
			return core.Version{}, core.Version{}, err
		}
		if !ok && text == "" {
			return core.Version{}, core.Version{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("project declares no editor version: " + projectPath)
		}
		projectVersion = detected
	}
	if text == "" {
		return projectVersion, projectVersion, nil
	}
	requested, err := core.ParseVersion(text)
	if err != nil {
		return core.Version{}, core.Version{}, err
	}
	return requested, projectVersion, nil
}
