package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"uvm/internal/metrics"
	"uvm/internal/ports"
	"uvm/internal/types"
)

const defaultScanWorkers = 4

// Scanner finds editor installations directly below a set of search roots.
// It never writes to disk.
type Scanner struct {
	Manifests ports.ManifestPort
	Include   []glob.Glob
	Workers   int
	Metrics   *metrics.Recorder
}

// ScanReport holds the installations found and the corrupt candidates that
// were left out. Both are ordered by root, then by directory name.
type ScanReport struct {
	Installations []*Installation
	Findings      []types.ScanFinding
}

type probeResult struct {
	installation *Installation
	finding      *types.ScanFinding
}

func NewScanner(manifests ports.ManifestPort) Scanner {
	return Scanner{Manifests: manifests, Workers: defaultScanWorkers}
}

// WithIncludePatterns restricts candidate directories to names matching at
// least one glob pattern. An empty list matches everything.
func (s Scanner) WithIncludePatterns(patterns []string) (Scanner, error) {
	var compiled []glob.Glob
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return s, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid scan include pattern: " + pattern).
				WithCause(err)
		}
		compiled = append(compiled, g)
	}
	s.Include = compiled
	return s, nil
}

// Scan probes every immediate subdirectory of roots. Directories without a
// manifest are skipped silently; corrupt ones become findings. Only
// cancellation of ctx ends a scan early, and the partial report is still
// returned in that case.
func (s Scanner) Scan(ctx context.Context, roots []string) (ScanReport, error) {
	if s.Manifests == nil {
		return ScanReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scanner requires a manifest port")
	}
	var candidates []string
	for _, root := range roots {
		candidates = append(candidates, s.candidates(ctx, root)...)
	}
	report, err := s.probeAll(ctx, candidates)
	s.Metrics.ScanCompleted(len(report.Installations), len(report.Findings))
	log.Ctx(ctx).Debug().
		Int("roots", len(roots)).
		Int("installations", len(report.Installations)).
		Int("findings", len(report.Findings)).
		Msg("scan completed")
	return report, err
}

// ScanInstallation probes a single directory, the installation itself
// rather than a root containing installations.
func (s Scanner) ScanInstallation(ctx context.Context, dir string) (ScanReport, error) {
	if s.Manifests == nil {
		return ScanReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scanner requires a manifest port")
	}
	if err := ctx.Err(); err != nil {
		return ScanReport{}, err
	}
	report, err := s.probeAll(ctx, []string{dir})
	s.Metrics.ScanCompleted(len(report.Installations), len(report.Findings))
	return report, err
}

func (s Scanner) candidates(ctx context.Context, root string) []string {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Ctx(ctx).Debug().Str("root", root).Msg("search root does not exist")
		} else {
			log.Ctx(ctx).Warn().Err(err).Str("root", root).Msg("failed to read search root")
		}
		return nil
	}
	var dirs []string
	for _, entry := range entries {
		if !s.included(entry.Name()) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if !isDir(entry, path) {
			continue
		}
		dirs = append(dirs, path)
	}
	return dirs
}

func (s Scanner) included(name string) bool {
	if len(s.Include) == 0 {
		return true
	}
	for _, g := range s.Include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (s Scanner) probeAll(ctx context.Context, dirs []string) (ScanReport, error) {
	results := make([]probeResult, len(dirs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(normalizeScanWorkers(s.Workers))
	for i, dir := range dirs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = s.probe(groupCtx, dir)
			return nil
		})
	}
	err := group.Wait()

	report := ScanReport{}
	for _, result := range results {
		if result.installation != nil {
			report.Installations = append(report.Installations, result.installation)
		}
		if result.finding != nil {
			report.Findings = append(report.Findings, *result.finding)
		}
	}
	return report, err
}

func (s Scanner) probe(ctx context.Context, dir string) probeResult {
	location, err := filepath.Abs(dir)
	if err != nil {
		location = filepath.Clean(dir)
	}
	manifest, ok, err := s.Manifests.ReadManifest(location)
	if err != nil {
		return corrupt(ctx, location, err)
	}
	if !ok {
		return probeResult{}
	}
	version, err := ParseVersion(manifest.Version)
	if err != nil {
		return corrupt(ctx, location, err)
	}
	return probeResult{installation: newScannedInstallation(location, version, s.Manifests)}
}

func corrupt(ctx context.Context, location string, cause error) probeResult {
	err := corruptInstallation(location, cause)
	log.Ctx(ctx).Warn().Err(cause).Str("location", location).Msg(ErrCorruptInstallation.Error())
	return probeResult{finding: &types.ScanFinding{
		Location: location,
		Reason:   cause.Error(),
		Err:      err,
	}}
}

func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func normalizeScanWorkers(value int) int {
	if value <= 0 {
		return defaultScanWorkers
	}
	return value
}
