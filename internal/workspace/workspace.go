package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/launchconfig"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
)

// Workspace is a project folder containing an asconfig.json.
type Workspace struct {
	fs           filesystem.FileSystem
	RootPath     string
	ManifestPath string
	manifestName string
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithManifestName looks for a manifest other than asconfig.json.
func WithManifestName(name string) Option {
	return func(w *Workspace) {
		if name != "" {
			w.manifestName = name
		}
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{
		fs:           fs,
		manifestName: manifest.FileName,
	}

	for _, option := range options {
		option(ws)
	}

	return ws
}

// Detect finds the workspace from the current directory.
func (w *Workspace) Detect() error {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return w.DetectFrom(cwd)
}

// DetectFrom walks up from dir looking for the manifest.
func (w *Workspace) DetectFrom(dir string) error {
	dir = filepath.Clean(dir)
	for {
		manifestPath := filepath.Join(dir, w.manifestName)
		if w.fs.Exists(manifestPath) && !w.fs.IsDir(manifestPath) {
			w.RootPath = dir
			w.ManifestPath = manifestPath
			return nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("workspace not found")
		}
		dir = parent
	}
}

// LaunchJSONPath returns the path to .vscode/launch.json.
func (w *Workspace) LaunchJSONPath() string {
	return launchconfig.Path(w.RootPath)
}
