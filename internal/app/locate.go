package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uvm/internal/core"
)

func (s Service) Locate(ctx context.Context, req LocateRequest) (LocateResult, error) {
	text := strings.TrimSpace(req.Version)
	if text == "" {
		return LocateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version is required")
	}
	requested, err := core.ParseVersion(text)
	if err != nil {
		return LocateResult{}, err
	}
	if _, err := s.refresh(ctx); err != nil {
		return LocateResult{}, err
	}
	inst, ok := s.Registry.Lookup(requested)
	if !ok {
		return LocateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no installation matches " + requested.String())
	}
	return LocateResult{Installation: summarize(inst, true)}, nil
}
