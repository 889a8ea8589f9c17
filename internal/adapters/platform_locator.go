package adapters

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uvm/internal/ports"
	"uvm/internal/shared"
)

// PlatformLocatorAdapter applies the per-OS conventions for where editor
// installations live. InstallRoot overrides the default install root and
// ExtraRoots are searched after the defaults.
type PlatformLocatorAdapter struct {
	GOOS        string
	InstallRoot string
	ExtraRoots  []string
	HomeDir     func() (string, error)
	Getenv      func(string) string
}

func NewPlatformLocatorAdapter(installRoot string, extraRoots []string) PlatformLocatorAdapter {
	return PlatformLocatorAdapter{
		GOOS:        runtime.GOOS,
		InstallRoot: installRoot,
		ExtraRoots:  extraRoots,
		HomeDir:     os.UserHomeDir,
		Getenv:      os.Getenv,
	}
}

// Locate returns the install directory for version below the install root,
// and every search root. An empty version yields only the roots.
func (a PlatformLocatorAdapter) Locate(version string) (string, []string, error) {
	defaults, err := a.defaultRoots()
	if err != nil {
		return "", nil, err
	}
	installRoot := strings.TrimSpace(a.InstallRoot)
	if installRoot == "" {
		installRoot = defaults[0]
	}
	roots := shared.UniquePaths(append(append([]string{installRoot}, defaults...), a.ExtraRoots...))
	version = strings.TrimSpace(version)
	if version == "" {
		return "", roots, nil
	}
	if strings.ContainsAny(version, `/\`) || version == "." || version == ".." {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version contains path separators")
	}
	return filepath.Join(roots[0], version), roots, nil
}

func (a PlatformLocatorAdapter) defaultRoots() ([]string, error) {
	switch a.GOOS {
	case "darwin":
		return []string{
			filepath.Join("/Applications", "Unity", "Hub", "Editor"),
			filepath.Join("/Applications", "Unity"),
		}, nil
	case "windows":
		programFiles := a.getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		return []string{
			filepath.Join(programFiles, "Unity", "Hub", "Editor"),
			filepath.Join(programFiles, "Unity"),
		}, nil
	default:
		home, err := a.homeDir()
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to detect user home").
				WithCause(err)
		}
		return []string{
			filepath.Join(home, "Unity", "Hub", "Editor"),
			filepath.Join(home, ".local", "share", "uvm", "editors"),
		}, nil
	}
}

func (a PlatformLocatorAdapter) homeDir() (string, error) {
	if a.HomeDir == nil {
		return os.UserHomeDir()
	}
	return a.HomeDir()
}

func (a PlatformLocatorAdapter) getenv(key string) string {
	if a.Getenv == nil {
		return os.Getenv(key)
	}
	return a.Getenv(key)
}

var _ ports.PlatformLocatorPort = PlatformLocatorAdapter{}
