package models

import (
	"fmt"
	"sort"
	"strings"
)

// Platform is a platform key as used in asconfig.json ("application" and
// "airOptions" mappings) and in the attach request's "platform" field.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "mac"
)

// Platforms lists the platform keys understood by the packager, in display order.
var Platforms = []Platform{PlatformAndroid, PlatformIOS, PlatformWindows, PlatformMac}

// Known reports whether p is one of the packager's platform keys.
func (p Platform) Known() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePlatform validates a platform key given on the command line.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Known() {
		return "", fmt.Errorf("invalid platform %q (expected one of %s)", s, joinPlatforms(Platforms))
	}
	return p, nil
}

// VersionPlatform selects the application descriptor for a launch request.
type VersionPlatform string

const (
	VersionPlatformAndroid VersionPlatform = "AND"
	VersionPlatformIOS     VersionPlatform = "IOS"
	VersionPlatformWindows VersionPlatform = "WIN"
	VersionPlatformMac     VersionPlatform = "MAC"
)

var versionPlatformKeys = map[VersionPlatform]Platform{
	VersionPlatformAndroid: PlatformAndroid,
	VersionPlatformIOS:     PlatformIOS,
	VersionPlatformWindows: PlatformWindows,
	VersionPlatformMac:     PlatformMac,
}

// Platform maps the version platform to its asconfig.json platform key.
// Unknown values report false.
func (v VersionPlatform) Platform() (Platform, bool) {
	p, ok := versionPlatformKeys[v]
	return p, ok
}

// ParseVersionPlatform validates a version platform given on the command line.
func ParseVersionPlatform(s string) (VersionPlatform, error) {
	v := VersionPlatform(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := versionPlatformKeys[v]; !ok {
		return "", fmt.Errorf("invalid version platform %q (expected AND, IOS, WIN or MAC)", s)
	}
	return v, nil
}

// ConfigKind is the "config" tag of asconfig.json.
type ConfigKind string

const (
	ConfigPlain     ConfigKind = ""
	ConfigAIR       ConfigKind = "air"
	ConfigAIRMobile ConfigKind = "airmobile"
)

// ParseConfigKind maps any unrecognised tag to ConfigPlain.
func ParseConfigKind(s string) ConfigKind {
	switch ConfigKind(s) {
	case ConfigAIR:
		return ConfigAIR
	case ConfigAIRMobile:
		return ConfigAIRMobile
	default:
		return ConfigPlain
	}
}

// IsAIR reports whether the config implies AIR packaging.
func (c ConfigKind) IsAIR() bool {
	return c == ConfigAIR || c == ConfigAIRMobile
}

// Profile names a runtime profile passed to the debugger.
type Profile string

const (
	ProfileMobileDevice    Profile = "mobileDevice"
	ProfileExtendedDesktop Profile = "extendedDesktop"
)

func joinPlatforms(platforms []Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
