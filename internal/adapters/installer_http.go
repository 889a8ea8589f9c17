package adapters

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cenk/backoff"
	"github.com/rs/zerolog/log"

	"uvm/internal/ports"
	"uvm/internal/shared"
	"uvm/internal/types"
)

const defaultInstallerRetries = 3
const defaultInstallerTimeout = 10 * time.Minute
const defaultInstallerRetryDelay = 500 * time.Millisecond

// HTTPInstallerAdapter installs editors from a mirror laid out as
//
//	<base>/<version>/editor.tar.gz
//	<base>/<version>/components/<component>.tar.gz
//
// Archives are unpacked into the destination and the installation manifest
// is written last, so an interrupted install is never seen as complete.
type HTTPInstallerAdapter struct {
	BaseURL    string
	Manifests  ManifestFileAdapter
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
}

func NewHTTPInstallerAdapter(baseURL string, retries int, timeoutSec int) HTTPInstallerAdapter {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultInstallerTimeout
	}
	if retries <= 0 {
		retries = defaultInstallerRetries
	}
	return HTTPInstallerAdapter{
		BaseURL:    baseURL,
		Manifests:  NewManifestFileAdapter(),
		Client:     &http.Client{Timeout: timeout},
		Retries:    retries,
		RetryDelay: defaultInstallerRetryDelay,
	}
}

func (a HTTPInstallerAdapter) Install(ctx context.Context, version string, destination string, components []types.Component) error {
	base := strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if base == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("installer base url is empty")
	}
	if strings.TrimSpace(destination) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install destination is empty")
	}

	existing, present, err := a.Manifests.ReadManifest(destination)
	if err != nil {
		return err
	}
	if present && existing.Version != version {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("destination holds version %s, not %s", existing.Version, version))
	}

	existed, empty, err := destinationState(destination)
	if err != nil {
		return err
	}
	if !present && existed && !empty {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("destination %s is not empty and is not managed by uvm", destination))
	}

	freshInstall := !present
	if err := a.install(ctx, base, version, destination, components, freshInstall); err != nil {
		if freshInstall {
			a.cleanup(ctx, destination, existed)
		}
		return err
	}

	installed := types.NewComponentSet(components...)
	for _, name := range existing.Components {
		installed.Add(types.Component(shared.NormalizeComponentName(name)))
	}
	return a.Manifests.WriteManifest(destination, types.Manifest{
		Version:    version,
		Components: installed.Strings(),
	})
}

// destinationState reports whether destination exists and, if so, whether
// it has no entries.
func destinationState(destination string) (bool, bool, error) {
	entries, err := os.ReadDir(destination)
	if errors.Is(err, fs.ErrNotExist) {
		return false, true, nil
	}
	if err != nil {
		return false, false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to read install destination").
			WithCause(err)
	}
	return true, len(entries) == 0, nil
}

// cleanup undoes a failed fresh install. A directory this call created is
// removed; one that was already there (and empty) is emptied again.
func (a HTTPInstallerAdapter) cleanup(ctx context.Context, destination string, existed bool) {
	logger := log.Ctx(ctx).With().Str("destination", destination).Logger()
	if !existed {
		if err := os.RemoveAll(destination); err != nil {
			logger.Warn().Err(err).Msg("failed to clean up partial install")
		}
		return
	}
	entries, err := os.ReadDir(destination)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to clean up partial install")
		return
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(destination, entry.Name())); err != nil {
			logger.Warn().Err(err).Str("entry", entry.Name()).Msg("failed to clean up partial install")
		}
	}
}

func (a HTTPInstallerAdapter) install(ctx context.Context, base string, version string, destination string, components []types.Component, withEditor bool) error {
	if err := os.MkdirAll(destination, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create install destination").
			WithCause(err)
	}
	if withEditor {
		url := fmt.Sprintf("%s/%s/editor.tar.gz", base, version)
		if err := a.fetchAndUnpack(ctx, url, destination); err != nil {
			return err
		}
	}
	for _, component := range components {
		url := fmt.Sprintf("%s/%s/components/%s.tar.gz", base, version, component)
		if err := a.fetchAndUnpack(ctx, url, destination); err != nil {
			return err
		}
	}
	return nil
}

func (a HTTPInstallerAdapter) fetchAndUnpack(ctx context.Context, url string, destination string) error {
	archive, err := os.CreateTemp("", "uvm-download-*.tar.gz")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download file").
			WithCause(err)
	}
	defer func() {
		_ = archive.Close()
		_ = os.Remove(archive.Name())
	}()

	if err := a.download(ctx, url, archive); err != nil {
		return err
	}
	if _, err := archive.Seek(0, io.SeekStart); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to rewind download").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("url", url).Str("destination", destination).Msg("unpacking archive")
	return extractTarGz(archive, destination)
}

func (a HTTPInstallerAdapter) download(ctx context.Context, url string, out *os.File) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = a.retryDelay()
	policy.MaxInterval = 10 * a.retryDelay()
	policy.Reset()
	retries := a.Retries
	if retries <= 0 {
		retries = defaultInstallerRetries
	}

	operation := func() error {
		if err := out.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}
		if _, err := out.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		retry, err := a.downloadOnce(ctx, url, out)
		if err != nil && !retry {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries-1)), ctx))
	if err == nil {
		return nil
	}
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to download " + url).
		WithCause(err)
}

func (a HTTPInstallerAdapter) downloadOnce(ctx context.Context, url string, out io.Writer) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: defaultInstallerTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return retry, shared.HTTPStatusError(resp.StatusCode, url)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		return true, err
	}
	return false, nil
}

func (a HTTPInstallerAdapter) retryDelay() time.Duration {
	if a.RetryDelay <= 0 {
		return defaultInstallerRetryDelay
	}
	return a.RetryDelay
}

func extractTarGz(r io.Reader, destination string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive is not gzip compressed").
			WithCause(err)
	}
	defer gz.Close()
	root, err := filepath.Abs(destination)
	if err != nil {
		return err
	}
	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read archive").
				WithCause(err)
		}
		target := filepath.Join(root, filepath.FromSlash(header.Name))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("archive entry escapes destination: " + header.Name)
		}
		if filepath.Base(target) == ManifestFileName && filepath.Dir(target) == root {
			continue
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeArchiveFile(reader, target, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
		default:
			log.Debug().Str("entry", header.Name).Msg("skipping unsupported archive entry")
		}
	}
}

func writeArchiveFile(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

var _ ports.InstallerPort = HTTPInstallerAdapter{}
