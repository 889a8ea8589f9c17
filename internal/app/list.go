package app

import (
	"context"
	"slices"

	"uvm/internal/core"
)

func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	report, err := s.refresh(ctx)
	if err != nil {
		return ListResult{}, err
	}
	installations := slices.Collect(s.Registry.All())
	slices.SortStableFunc(installations, func(a, b *core.Installation) int {
		return core.CompareVersions(a.Version(), b.Version())
	})
	result := ListResult{Findings: report.Findings}
	for _, inst := range installations {
		result.Installations = append(result.Installations, summarize(inst, req.Components))
	}
	return result, nil
}

func summarize(inst *core.Installation, withComponents bool) InstallationSummary {
	summary := InstallationSummary{
		Version:  inst.Version().String(),
		Location: inst.Location(),
	}
	if withComponents {
		summary.Components = inst.Components().Strings()
	}
	return summary
}
