package resolver

import (
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// detectExtDir returns the unpacked native extension directory next to the
// program when the library path references any .ane files. Without an
// unpacked directory the library path is not scanned at all.
func (r *Resolver) detectExtDir(log logr.Logger, workspaceRoot, program string, state launchState) (string, bool) {
	programDir := absPath(workspaceRoot, filepath.Dir(program))
	unpackagedDir := filepath.Join(programDir, unpackagedANEsDirName)
	if !r.fs.IsDir(unpackagedDir) {
		return "", false
	}

	var anePaths []string
	for _, entry := range state.libraryPath {
		anePaths = append(anePaths, r.findANEs(log, workspaceRoot, entry)...)
	}
	for _, entry := range state.externalLibraryPath {
		anePaths = append(anePaths, r.findANEs(log, workspaceRoot, entry)...)
	}

	if len(anePaths) == 0 {
		log.V(1).Info("no native extensions on the library path", "unpackagedDir", unpackagedDir)
		return "", false
	}

	log.V(1).Info("native extensions found", "extdir", unpackagedDir, "anes", anePaths)
	return unpackagedDir, true
}

// findANEs expands one library path entry: an .ane file is taken as is, a
// directory contributes its direct children ending in .ane.
func (r *Resolver) findANEs(log logr.Logger, workspaceRoot, entry string) []string {
	path := absPath(workspaceRoot, entry)
	if strings.HasSuffix(path, extANE) {
		return []string{path}
	}
	if !r.fs.Exists(path) || !r.fs.IsDir(path) {
		return nil
	}

	children, err := r.fs.ReadDir(path)
	if err != nil {
		log.V(1).Info("skipping unreadable library directory", "path", path, "error", err.Error())
		return nil
	}

	var anes []string
	for _, child := range children {
		if strings.HasSuffix(child.Name(), extANE) {
			anes = append(anes, filepath.Join(path, child.Name()))
		}
	}
	return anes
}
