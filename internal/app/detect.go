package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	projectPath := strings.TrimSpace(req.ProjectPath)
	if projectPath == "" {
		return DetectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is required")
	}
	version, ok, err := s.Resolver.ResolveProject(ctx, projectPath)
	if err != nil {
		return DetectResult{}, err
	}
	if !ok {
		return DetectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("project declares no editor version: " + projectPath)
	}
	return DetectResult{ProjectPath: projectPath, Version: version.String()}, nil
}
