package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uvm/internal/metrics"
	"uvm/internal/ports"
	"uvm/internal/types"
)

// Orchestrator installs whatever part of a request is not yet on disk.
type Orchestrator struct {
	Resolver  ResolverCore
	Scanner   Scanner
	Installer ports.InstallerPort
	Metrics   *metrics.Recorder
	locks     *keyedLock
}

// installPlan is what the backend is asked to do for one request.
type installPlan struct {
	version    Version
	target     string
	components types.ComponentSet
}

func NewOrchestrator(resolver ResolverCore, scanner Scanner, installer ports.InstallerPort) *Orchestrator {
	return &Orchestrator{
		Resolver:  resolver,
		Scanner:   scanner,
		Installer: installer,
		locks:     newKeyedLock(),
	}
}

// EnsureInstalled returns an installation that satisfies requested and
// components, installing only the missing part. An already satisfied
// request returns without taking a lock or calling the installer. New
// versions go to destination; missing components are added to the
// installation that already carries the version.
func (o *Orchestrator) EnsureInstalled(ctx context.Context, requested Version, components types.ComponentSet, destination string) (*Installation, error) {
	if o.Installer == nil || o.Resolver.Registry == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("orchestrator requires an installer and a registry")
	}
	if requested.IsZero() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("requested version is empty")
	}

	result := o.Resolver.Resolve(requested, components)
	if result.Status == types.ResolutionSatisfied {
		o.Metrics.FastPath()
		log.Ctx(ctx).Debug().Str("installation", result.Installation.String()).Msg("already installed")
		return result.Installation, nil
	}

	for {
		plan, err := planInstall(requested, components, result, destination)
		if err != nil {
			return nil, err
		}
		unlock, err := o.locks.Lock(ctx, plan.target)
		if err != nil {
			return nil, err
		}

		// Another caller may have finished while we waited.
		result = o.Resolver.Resolve(requested, components)
		if result.Status == types.ResolutionSatisfied {
			unlock()
			o.Metrics.FastPath()
			return result.Installation, nil
		}
		current, err := planInstall(requested, components, result, destination)
		if err != nil {
			unlock()
			return nil, err
		}
		if current.target != plan.target {
			unlock()
			continue
		}

		inst, err := o.install(ctx, requested, components, current)
		unlock()
		return inst, err
	}
}

func (o *Orchestrator) install(ctx context.Context, requested Version, components types.ComponentSet, plan installPlan) (*Installation, error) {
	logger := log.Ctx(ctx).With().
		Str("version", plan.version.String()).
		Str("target", plan.target).
		Strs("components", plan.components.Strings()).
		Logger()
	logger.Info().Msg("installing")

	o.Metrics.BackendInvoked()
	if err := o.Installer.Install(ctx, plan.version.String(), plan.target, plan.components.Sorted()); err != nil {
		o.Metrics.InstallFinished(metrics.OutcomeFailed)
		logger.Error().Err(err).Msg("installer failed")
		return nil, installationFailed(plan.version, plan.target, err)
	}

	report, err := o.Scanner.ScanInstallation(ctx, plan.target)
	if err != nil {
		return nil, err
	}
	for _, inst := range report.Installations {
		o.Resolver.Registry.Fold(inst)
	}

	final := o.Resolver.Resolve(requested, components)
	if final.Status != types.ResolutionSatisfied {
		o.Metrics.InstallFinished(metrics.OutcomeVerificationFailed)
		logger.Error().Str("status", string(final.Status)).Msg("installation not observable after install")
		return nil, verificationFailed(plan.version, plan.target, string(final.Status))
	}
	o.Metrics.InstallFinished(metrics.OutcomeInstalled)
	logger.Info().Str("location", final.Installation.Location()).Msg("installed")
	return final.Installation, nil
}

func planInstall(requested Version, components types.ComponentSet, result ResolutionResult, destination string) (installPlan, error) {
	switch result.Status {
	case types.ResolutionNeedsInstall:
		return installPlan{
			version:    result.Version,
			target:     lockKey(result.Installation.Location()),
			components: result.Missing,
		}, nil
	case types.ResolutionNotFound:
		if !requested.IsComplete() {
			return installPlan{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("version %s is not installed and is too partial to install", requested))
		}
		if strings.TrimSpace(destination) == "" {
			return installPlan{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("install destination is empty")
		}
		return installPlan{
			version:    requested,
			target:     lockKey(destination),
			components: components.Clone(),
		}, nil
	default:
		return installPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unexpected resolution status %s", result.Status))
	}
}

func lockKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
