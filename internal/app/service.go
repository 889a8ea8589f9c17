package app

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"

	"uvm/internal/adapters"
	"uvm/internal/core"
	"uvm/internal/metrics"
	"uvm/internal/policies"
	"uvm/internal/ports"
)

// Config carries the resolved configuration for one service instance.
type Config struct {
	InstallRoot         string
	SearchRoots         []string
	ScanInclude         []string
	ScanWorkers         int
	InstallerBaseURL    string
	InstallerRetries    int
	InstallerTimeoutSec int
	MetricsTextfile     string
	HostOS              string
}

// Ports are the collaborators a Service talks to.
type Ports struct {
	Locator   ports.PlatformLocatorPort
	Manifests ports.ManifestPort
	Projects  ports.ProjectVersionPort
	Workspace ports.ProjectWorkspacePort
	Installer ports.InstallerPort
}

type Service struct {
	Locator         ports.PlatformLocatorPort
	ProjectVersions ports.ProjectVersionPort
	Workspace       ports.ProjectWorkspacePort
	Policy          policies.ComponentPolicy
	Metrics         *metrics.Recorder
	Registry        *core.Registry
	Resolver        core.ResolverCore
	Scanner         core.Scanner
	Orchestrator    *core.Orchestrator
	MetricsTextfile string
}

func DefaultPorts(cfg Config) Ports {
	return Ports{
		Locator:   adapters.NewPlatformLocatorAdapter(cfg.InstallRoot, cfg.SearchRoots),
		Manifests: adapters.NewManifestFileAdapter(),
		Projects:  adapters.NewProjectVersionFileAdapter(),
		Workspace: adapters.NewWorkspaceAdapter(),
		Installer: adapters.NewHTTPInstallerAdapter(cfg.InstallerBaseURL, cfg.InstallerRetries, cfg.InstallerTimeoutSec),
	}
}

func NewService(cfg Config) (Service, error) {
	return NewServiceWithPorts(cfg, DefaultPorts(cfg))
}

func NewServiceWithPorts(cfg Config, deps Ports) (Service, error) {
	scanner := core.NewScanner(deps.Manifests)
	if cfg.ScanWorkers > 0 {
		scanner.Workers = cfg.ScanWorkers
	}
	scanner, err := scanner.WithIncludePatterns(cfg.ScanInclude)
	if err != nil {
		return Service{}, err
	}
	recorder := metrics.NewRecorder()
	scanner.Metrics = recorder

	hostOS := cfg.HostOS
	if hostOS == "" {
		hostOS = runtime.GOOS
	}
	registry := core.NewRegistry()
	resolver := core.NewResolverCore(registry, deps.Projects)
	orchestrator := core.NewOrchestrator(resolver, scanner, deps.Installer)
	orchestrator.Metrics = recorder

	return Service{
		Locator:         deps.Locator,
		ProjectVersions: deps.Projects,
		Workspace:       deps.Workspace,
		Policy:          policies.NewComponentPolicy(hostOS),
		Metrics:         recorder,
		Registry:        registry,
		Resolver:        resolver,
		Scanner:         scanner,
		Orchestrator:    orchestrator,
		MetricsTextfile: cfg.MetricsTextfile,
	}, nil
}

// refresh rescans every search root and replaces the registry contents.
func (s Service) refresh(ctx context.Context) (core.ScanReport, error) {
	_, roots, err := s.Locator.Locate("")
	if err != nil {
		return core.ScanReport{}, err
	}
	report, err := s.Scanner.Scan(ctx, roots)
	if err != nil {
		return report, err
	}
	s.Registry.Rebuild(report.Installations)
	return report, nil
}

func (s Service) flushMetrics(ctx context.Context) {
	if err := s.Metrics.WriteTextfile(s.MetricsTextfile); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", s.MetricsTextfile).Msg("failed to write metrics")
	}
}
