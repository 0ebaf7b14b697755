package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// Root returns the workspace root
func (wb *WorkspaceBuilder) Root() string {
	return wb.root
}

// Path joins a workspace-relative path onto the root
func (wb *WorkspaceBuilder) Path(rel string) string {
	return filepath.Join(wb.root, rel)
}

// WithManifest writes asconfig.json
func (wb *WorkspaceBuilder) WithManifest(content string) *WorkspaceBuilder {
	wb.fs.AddFile(wb.Path(manifest.FileName), []byte(content))
	return wb
}

// WithDescriptor writes an application descriptor declaring the given id
func (wb *WorkspaceBuilder) WithDescriptor(rel, id string) *WorkspaceBuilder {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8" standalone="no"?>
<application xmlns="http://ns.adobe.com/air/application/33.1">
	<id>%s</id>
	<filename>App</filename>
	<versionNumber>1.0.0</versionNumber>
	<initialWindow>
		<content>[This value will be overwritten by the compiler]</content>
	</initialWindow>
</application>
`, id)
	wb.fs.AddFile(wb.Path(rel), []byte(content))
	return wb
}

// WithFile adds a file with the given content
func (wb *WorkspaceBuilder) WithFile(rel, content string) *WorkspaceBuilder {
	wb.fs.AddFile(wb.Path(rel), []byte(content))
	return wb
}

// WithDir adds an empty directory
func (wb *WorkspaceBuilder) WithDir(rel string) *WorkspaceBuilder {
	wb.fs.AddDir(wb.Path(rel))
	return wb
}

// WithUnpackagedANEs creates the unpacked extension directory next to the
// program directory, e.g. "bin" -> bin/.as3mxml-unpackaged-anes
func (wb *WorkspaceBuilder) WithUnpackagedANEs(programDir string) *WorkspaceBuilder {
	return wb.WithDir(filepath.Join(programDir, ".as3mxml-unpackaged-anes"))
}

// Build returns the mock filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	return wb.fs
}
