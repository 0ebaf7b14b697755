package launchconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

const (
	// Dir is the editor settings directory inside the workspace.
	Dir = ".vscode"
	// FileName is the launch configuration file inside Dir.
	FileName = "launch.json"
	// Version is the launch.json schema version written by WriteStarter.
	Version = "0.2.0"

	initialName = "Launch SWF"
)

var byteOrderMark = []byte("\xEF\xBB\xBF")

// ErrExists is returned by WriteStarter when launch.json is already there.
var ErrExists = errors.New("launch.json already exists")

// LaunchJSON is the content of .vscode/launch.json. Only swf configurations
// are decoded; other debuggers are remembered by name.
type LaunchJSON struct {
	Version        string                 `json:"version"`
	Configurations []*models.DebugRequest `json:"configurations"`

	others []string
}

type launchDocument struct {
	Version        string            `json:"version"`
	Configurations []json.RawMessage `json:"configurations"`
}

// InitialConfigurations returns the starter configurations offered for a
// workspace. The resolver fills in everything else. Without a workspace there
// is nothing to offer.
func InitialConfigurations(workspaceRoot string) []*models.DebugRequest {
	if workspaceRoot == "" {
		return []*models.DebugRequest{}
	}
	return []*models.DebugRequest{
		{
			Type:    models.DebugType,
			Request: models.RequestLaunch,
			Name:    initialName,
		},
	}
}

// Path returns the launch.json location for a workspace root.
func Path(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, Dir, FileName)
}

// Load reads a launch.json file. Comments and trailing commas are allowed.
// Configurations for other debuggers are skipped without being decoded, so
// their attributes may take any shape.
func Load(fs filesystem.FileSystem, path string) (*LaunchJSON, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc launchDocument
	if err := json.Unmarshal(jsonc.ToJSON(bytes.TrimPrefix(data, byteOrderMark)), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	launch := &LaunchJSON{Version: doc.Version}
	for i, raw := range doc.Configurations {
		if gjson.GetBytes(raw, "type").String() != models.DebugType {
			if name := gjson.GetBytes(raw, "name"); name.Type == gjson.String {
				launch.others = append(launch.others, name.Str)
			}
			continue
		}

		var config models.DebugRequest
		if err := json.Unmarshal(raw, &config); err != nil {
			return nil, fmt.Errorf("failed to parse configuration %d in %s: %w", i, path, err)
		}
		launch.Configurations = append(launch.Configurations, &config)
	}
	return launch, nil
}

// LoadRequest reads a file holding a single debug configuration object.
func LoadRequest(fs filesystem.FileSystem, path string) (*models.DebugRequest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req models.DebugRequest
	if err := json.Unmarshal(jsonc.ToJSON(bytes.TrimPrefix(data, byteOrderMark)), &req); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &req, nil
}

// Find returns the configuration with the given name. An empty name selects
// the only swf configuration, if there is exactly one.
func (l *LaunchJSON) Find(name string) (*models.DebugRequest, error) {
	if name != "" {
		for _, config := range l.Configurations {
			if config != nil && config.Name == name {
				return config, nil
			}
		}
		for _, other := range l.others {
			if other == name {
				return nil, fmt.Errorf("configuration %q is not a %s configuration", name, models.DebugType)
			}
		}
		return nil, fmt.Errorf("configuration %q not found (available: %s)", name, l.names())
	}

	var match *models.DebugRequest
	count := 0
	for _, config := range l.Configurations {
		if config != nil && config.Type == models.DebugType {
			match = config
			count++
		}
	}

	switch count {
	case 0:
		return nil, fmt.Errorf("no %s configuration found", models.DebugType)
	case 1:
		return match, nil
	default:
		return nil, fmt.Errorf("multiple %s configurations found, select one with --name (available: %s)", models.DebugType, l.names())
	}
}

func (l *LaunchJSON) names() string {
	var names []string
	for _, config := range l.Configurations {
		if config != nil && config.Type == models.DebugType {
			names = append(names, fmt.Sprintf("%q", config.Name))
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// WriteStarter writes a launch.json holding the initial configurations.
// An existing file is only replaced when force is set.
func WriteStarter(fs filesystem.FileSystem, workspaceRoot string, force bool) (string, error) {
	path := Path(workspaceRoot)
	if fs.Exists(path) && !force {
		return path, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
	}

	launch := LaunchJSON{
		Version:        Version,
		Configurations: InitialConfigurations(workspaceRoot),
	}
	data, err := json.MarshalIndent(launch, "", "  ")
	if err != nil {
		return path, fmt.Errorf("failed to encode launch.json: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := fs.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
