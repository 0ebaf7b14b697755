package manifest

import (
	"sort"

	"github.com/jakoblorz/go-swfdebug/internal/models"
)

// FileName is the project manifest, resolved relative to the workspace root.
const FileName = "asconfig.json"

// Manifest is the subset of asconfig.json the debug resolver reads.
//
// Optional strings are pointers: nil means the key was absent (or not a
// string), while a non-nil empty string means the key was present but empty.
type Manifest struct {
	Config          models.ConfigKind
	Application     Application
	CompilerOptions CompilerOptions
	// Files are the source paths; the last one is the entry point.
	Files          []string
	AnimateOptions AnimateOptions
	AIROptions     AIROptions
}

// Application is the "application" field: a single descriptor path or a
// mapping from platform key to descriptor path.
type Application struct {
	// Present is true whenever the key exists, whatever its value.
	Present    bool
	Path       *string
	ByPlatform map[models.Platform]string
}

// CompilerOptions is the subset of "compilerOptions" used for debugging.
type CompilerOptions struct {
	Output              *string
	LibraryPath         []string
	ExternalLibraryPath []string
}

// AnimateOptions points at an Animate project that produces the SWF.
type AnimateOptions struct {
	File *string
}

// AIROptions carries the packaged bundle output paths.
type AIROptions struct {
	Output    *string
	Platforms map[models.Platform]PlatformOptions
}

// PlatformOptions are per-platform packaging options.
type PlatformOptions struct {
	Output *string
}

// DescriptorPath returns the application descriptor for a platform key. A
// single string descriptor applies to every platform.
func (a Application) DescriptorPath(platform models.Platform) (string, bool) {
	if a.Path != nil {
		return *a.Path, true
	}
	path, ok := a.ByPlatform[platform]
	return path, ok
}

// BundleOutput returns the packaged output for a platform, falling back to
// the top-level airOptions.output.
func (o AIROptions) BundleOutput(platform models.Platform) (string, bool) {
	if p, ok := o.Platforms[platform]; ok && p.Output != nil {
		return *p.Output, true
	}
	if o.Output != nil {
		return *o.Output, true
	}
	return "", false
}

// MainClassPath returns the last entry of "files".
func (m *Manifest) MainClassPath() (string, bool) {
	if len(m.Files) == 0 {
		return "", false
	}
	return m.Files[len(m.Files)-1], true
}

// Platforms returns the platform keys mentioned by "application" or
// "airOptions", sorted.
func (m *Manifest) Platforms() []models.Platform {
	seen := make(map[models.Platform]struct{})
	for p := range m.Application.ByPlatform {
		seen[p] = struct{}{}
	}
	for p := range m.AIROptions.Platforms {
		seen[p] = struct{}{}
	}

	platforms := make([]models.Platform, 0, len(seen))
	for p := range seen {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i] < platforms[j]
	})
	return platforms
}
