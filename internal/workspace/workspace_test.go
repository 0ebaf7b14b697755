package workspace

import (
	"testing"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
)

func TestWorkspaceDetect_ManifestInCurrentDir(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/asconfig.json", []byte("{}"))

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.RootPath != "/workspace" {
		t.Fatalf("unexpected root path: %s", ws.RootPath)
	}
	if ws.ManifestPath != "/workspace/asconfig.json" {
		t.Fatalf("unexpected manifest path: %s", ws.ManifestPath)
	}
}

func TestWorkspaceDetect_WalksUpFromSubdirectory(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/projects/game/asconfig.json", []byte("{}"))
	fs.AddDir("/projects/game/src/com/example")
	fs.SetCurrentDir("/projects/game/src/com/example")

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.RootPath != "/projects/game" {
		t.Fatalf("unexpected root path: %s", ws.RootPath)
	}
	if ws.LaunchJSONPath() != "/projects/game/.vscode/launch.json" {
		t.Fatalf("unexpected launch.json path: %s", ws.LaunchJSONPath())
	}
}

func TestWorkspaceDetect_IgnoresManifestDirectory(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/projects/asconfig.json", []byte("{}"))
	fs.AddDir("/projects/game/asconfig.json")
	fs.SetCurrentDir("/projects/game")

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.RootPath != "/projects" {
		t.Fatalf("unexpected root path: %s", ws.RootPath)
	}
}

func TestWorkspaceDetect_CustomManifestName(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/asconfig.json", []byte("{}"))
	fs.AddFile("/workspace/mobile/asconfig.mobile.json", []byte("{}"))
	fs.SetCurrentDir("/workspace/mobile")

	ws := New(fs, WithManifestName("asconfig.mobile.json"))
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.ManifestPath != "/workspace/mobile/asconfig.mobile.json" {
		t.Fatalf("unexpected manifest path: %s", ws.ManifestPath)
	}
}

func TestWorkspaceDetect_WorkspaceNotFound(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	ws := New(fs)
	if err := ws.Detect(); err == nil {
		t.Fatalf("expected error")
	} else if err.Error() != "workspace not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWorkspaceBuilder_Layout(t *testing.T) {
	fs := NewWorkspaceBuilder("/test-workspace").
		WithManifest(`{"config": "air"}`).
		WithDescriptor("src/App-app.xml", "com.example.app").
		WithUnpackagedANEs("bin").
		Build()

	for _, path := range []string{
		"/test-workspace/asconfig.json",
		"/test-workspace/src/App-app.xml",
	} {
		if !fs.Exists(path) || fs.IsDir(path) {
			t.Errorf("expected file %s", path)
		}
	}
	if !fs.IsDir("/test-workspace/bin/.as3mxml-unpackaged-anes") {
		t.Error("expected unpacked extension directory")
	}

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if ws.RootPath != "/test-workspace" {
		t.Fatalf("unexpected root path: %s", ws.RootPath)
	}
}
