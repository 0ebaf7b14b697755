package resolver

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	extSWF                = ".swf"
	extANE                = ".ane"
	extXML                = ".xml"
	suffixAppDescriptor   = "-app.xml"
	unpackagedANEsDirName = ".as3mxml-unpackaged-anes"
)

// applicationIDPattern matches the first <id> element. The id itself is not
// validated beyond its character set.
var applicationIDPattern = regexp.MustCompile(`<id>([\w+\.]+)</id>`)

// findApplicationID returns the first <id> of an application descriptor.
func findApplicationID(descriptor string) (string, bool) {
	match := applicationIDPattern.FindStringSubmatch(descriptor)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// replaceExt swaps the extension of path, e.g. src/Main.as -> src/Main.swf.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// synthesizeDescriptorPath names the descriptor the build copies from the SDK
// when asconfig.json declares none: bin/Main.swf -> bin/Main-app.xml, or
// src/Main.as -> src/Main-app.xml without an output.
func synthesizeDescriptorPath(outputPath, mainClassPath *string) (string, bool) {
	if outputPath != nil {
		name := filepath.Base(*outputPath)
		if i := strings.Index(name, "."); i != -1 {
			name = name[:i]
		}
		return filepath.Join(filepath.Dir(*outputPath), name+suffixAppDescriptor), true
	}
	if mainClassPath != nil {
		return replaceExt(*mainClassPath, suffixAppDescriptor), true
	}
	return "", false
}

// absPath resolves p against the workspace root unless it is already absolute.
func absPath(workspaceRoot, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workspaceRoot, p)
}
