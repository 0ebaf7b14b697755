package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DebugType is the debugger type every resolved configuration carries.
const DebugType = "swf"

// RequestKind is the debug request mode.
type RequestKind string

const (
	RequestLaunch RequestKind = "launch"
	RequestAttach RequestKind = "attach"
)

// ParseRequestKind validates a request kind given on the command line.
func ParseRequestKind(s string) (RequestKind, error) {
	switch k := RequestKind(strings.ToLower(strings.TrimSpace(s))); k {
	case RequestLaunch, RequestAttach:
		return k, nil
	default:
		return "", fmt.Errorf("invalid request %q (expected launch or attach)", s)
	}
}

// DebugRequest is a single debug configuration as it appears in launch.json.
//
// Fields that must tell "absent" apart from a zero value are pointers or
// slices. Keys the resolver does not know about are kept in Extra and written
// back out unchanged.
type DebugRequest struct {
	Type    string      `json:"type,omitempty"`
	Request RequestKind `json:"request,omitempty"`
	Name    string      `json:"name,omitempty"`

	// Launch
	Program           string          `json:"program,omitempty"`
	Profile           Profile         `json:"profile,omitempty"`
	ScreenDPI         *int            `json:"screenDPI,omitempty"`
	ScreenSize        string          `json:"screensize,omitempty"`
	Args              []string        `json:"args,omitempty"`
	VersionPlatform   VersionPlatform `json:"versionPlatform,omitempty"`
	RuntimeExecutable string          `json:"runtimeExecutable,omitempty"`
	RuntimeArgs       []string        `json:"runtimeArgs,omitempty"`
	ExtDir            string          `json:"extdir,omitempty"`
	Connect           *bool           `json:"connect,omitempty"`
	Port              *int            `json:"port,omitempty"`

	// Attach
	Platform      Platform `json:"platform,omitempty"`
	Bundle        string   `json:"bundle,omitempty"`
	ApplicationID string   `json:"applicationID,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	// keys present in the decoded document, including ones set to null or ""
	present map[string]struct{}
}

var knownKeys = map[string]struct{}{
	"type": {}, "request": {}, "name": {},
	"program": {}, "profile": {}, "screenDPI": {}, "screensize": {}, "args": {},
	"versionPlatform": {}, "runtimeExecutable": {}, "runtimeArgs": {}, "extdir": {},
	"connect": {}, "port": {},
	"platform": {}, "bundle": {}, "applicationID": {},
}

type debugRequestFields DebugRequest

func (r *DebugRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var fields debugRequestFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = DebugRequest(fields)

	r.present = make(map[string]struct{}, len(raw))
	for key, value := range raw {
		r.present[key] = struct{}{}
		if _, known := knownKeys[key]; known {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[key] = value
	}

	return nil
}

func (r DebugRequest) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(debugRequestFields(r))
	if err != nil || len(r.Extra) == 0 {
		return data, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		if _, exists := merged[key]; !exists {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Has reports whether the launch.json key was given, either in the decoded
// document (even as null or "") or by setting the field directly.
func (r *DebugRequest) Has(key string) bool {
	if _, ok := r.present[key]; ok {
		return true
	}

	switch key {
	case "program":
		return r.Program != ""
	case "profile":
		return r.Profile != ""
	case "screenDPI":
		return r.ScreenDPI != nil
	case "screensize":
		return r.ScreenSize != ""
	case "args":
		return r.Args != nil
	case "versionPlatform":
		return r.VersionPlatform != ""
	case "extdir":
		return r.ExtDir != ""
	case "platform":
		return r.Platform != ""
	case "bundle":
		return r.Bundle != ""
	case "applicationID":
		return r.ApplicationID != ""
	}

	_, ok := r.Extra[key]
	return ok
}

// airTuningKeys only make sense for the AIR debug launcher.
var airTuningKeys = []string{"profile", "screensize", "screenDPI", "versionPlatform", "extdir", "args"}

// HasAIRTuning reports whether any AIR-only launch option is present.
func (r *DebugRequest) HasAIRTuning() bool {
	for _, key := range airTuningKeys {
		if r.Has(key) {
			return true
		}
	}
	return false
}

// Kind returns the request kind, defaulting to launch.
func (r *DebugRequest) Kind() RequestKind {
	if r.Request == "" {
		return RequestLaunch
	}
	return r.Request
}

// Clone returns a deep copy.
func (r *DebugRequest) Clone() *DebugRequest {
	if r == nil {
		return &DebugRequest{}
	}

	c := *r
	c.ScreenDPI = cloneInt(r.ScreenDPI)
	c.Port = cloneInt(r.Port)
	if r.Connect != nil {
		connect := *r.Connect
		c.Connect = &connect
	}
	if r.Args != nil {
		c.Args = append([]string{}, r.Args...)
	}
	if r.RuntimeArgs != nil {
		c.RuntimeArgs = append([]string{}, r.RuntimeArgs...)
	}
	if r.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for key, value := range r.Extra {
			c.Extra[key] = append(json.RawMessage{}, value...)
		}
	}
	if r.present != nil {
		c.present = make(map[string]struct{}, len(r.present))
		for key := range r.present {
			c.present[key] = struct{}{}
		}
	}
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
