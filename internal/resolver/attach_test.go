package resolver

import (
	"testing"

	"github.com/jakoblorz/go-swfdebug/internal/models"
	"github.com/jakoblorz/go-swfdebug/internal/workspace"
	"github.com/stretchr/testify/require"
)

func TestResolveAttach_WithoutPlatformIsUnchanged(t *testing.T) {
	req := decodeRequest(t, `{"type": "swf", "request": "attach", "name": "Attach SWF", "connect": true}`)

	resolved, err, messages := resolveWith(t, `{}`, req)
	require.NoError(t, err)
	require.Empty(t, messages)
	require.Equal(t, req, resolved)
}

func TestResolveAttach_StillRequiresValidManifest(t *testing.T) {
	req := decodeRequest(t, `{"request": "attach"}`)

	_, err, messages := resolveWith(t, `{"airOptions": `, req)
	require.ErrorIs(t, err, ErrManifestParse)
	require.Len(t, messages, 1)
}

func TestResolveAttach_PlatformDescriptor(t *testing.T) {
	fs := workspace.NewWorkspaceBuilder(testRoot).
		WithManifest(`{
			"config": "airmobile",
			"application": {
				"android": "src/Game-android-app.xml",
				"ios": "src/Game-ios-app.xml",
			},
			"airOptions": {
				"android": {"output": "bin/Game.apk"},
				"ios": {"output": "bin/Game.ipa"},
			},
		}`).
		WithDescriptor("src/Game-android-app.xml", "com.example.game.android").
		WithDescriptor("src/Game-ios-app.xml", "com.example.game.ios").
		Build()
	r, recorder := newTestResolver(fs)

	resolved, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "ios"}`))
	require.NoError(t, err)
	require.Empty(t, recorder.Messages())
	require.Equal(t, "com.example.game.ios", resolved.ApplicationID)
	require.Equal(t, "bin/Game.ipa", resolved.Bundle)
	require.Equal(t, models.RequestAttach, resolved.Request)
}

func TestResolveAttach_SingleDescriptorAndSharedOutput(t *testing.T) {
	fs := workspace.NewWorkspaceBuilder(testRoot).
		WithManifest(`{
			"application": "src/Game-app.xml",
			"airOptions": {"output": "bin/Game.air", "android": {"signingOptions": {}}}
		}`).
		WithDescriptor("src/Game-app.xml", "com.example.game").
		Build()
	r, _ := newTestResolver(fs)

	resolved, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "android"}`))
	require.NoError(t, err)
	require.Equal(t, "com.example.game", resolved.ApplicationID)
	require.Equal(t, "bin/Game.air", resolved.Bundle)
}

func TestResolveAttach_AbsoluteDescriptorPath(t *testing.T) {
	fs := workspace.NewWorkspaceBuilder(testRoot).
		WithManifest(`{"application": "/shared/descriptors/Game-app.xml", "airOptions": {"output": "bin/Game.apk"}}`).
		Build()
	fs.AddFile("/shared/descriptors/Game-app.xml", []byte("<application><id>com.example.shared</id></application>"))
	r, _ := newTestResolver(fs)

	resolved, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "android"}`))
	require.NoError(t, err)
	require.Equal(t, "com.example.shared", resolved.ApplicationID)
}

func TestResolveAttach_ExplicitValuesWin(t *testing.T) {
	fs := workspace.NewWorkspaceBuilder(testRoot).
		WithManifest(`{"application": "src/Missing-app.xml", "airOptions": {"output": "bin/Game.apk"}}`).
		Build()
	r, recorder := newTestResolver(fs)

	req := decodeRequest(t, `{"request": "attach", "platform": "android", "applicationID": "com.example.manual", "bundle": "dist/Manual.apk"}`)
	resolved, err := r.Resolve(ctxBackground(), testRoot, req)
	require.NoError(t, err)
	require.Empty(t, recorder.Messages())
	require.Equal(t, "com.example.manual", resolved.ApplicationID)
	require.Equal(t, "dist/Manual.apk", resolved.Bundle)
}

func TestResolveAttach_MissingApplicationID(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		files    map[string]string
	}{
		{
			name:     "no application",
			manifest: `{"airOptions": {"output": "bin/Game.apk"}}`,
		},
		{
			name:     "no descriptor for platform",
			manifest: `{"application": {"ios": "src/ios-app.xml"}, "airOptions": {"output": "bin/Game.apk"}}`,
		},
		{
			name:     "descriptor without id",
			manifest: `{"application": "src/Game-app.xml", "airOptions": {"output": "bin/Game.apk"}}`,
			files:    map[string]string{"src/Game-app.xml": "<application><filename>Game</filename></application>"},
		},
		{
			name:     "id with disallowed characters",
			manifest: `{"application": "src/Game-app.xml", "airOptions": {"output": "bin/Game.apk"}}`,
			files:    map[string]string{"src/Game-app.xml": "<application><id>com.example game</id></application>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := workspace.NewWorkspaceBuilder(testRoot).WithManifest(tt.manifest)
			for rel, content := range tt.files {
				wb.WithFile(rel, content)
			}
			r, recorder := newTestResolver(wb.Build())

			resolved, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "android"}`))
			require.Nil(t, resolved)
			require.ErrorIs(t, err, ErrMissingApplicationID)
			require.Equal(t, []string{
				`Failed to debug SWF. Error reading application <id> in application descriptor for platform "android".`,
			}, recorder.Messages())
		})
	}
}

func TestResolveAttach_MissingBundleOutput(t *testing.T) {
	fs := workspace.NewWorkspaceBuilder(testRoot).
		WithManifest(`{"application": "src/Game-app.xml", "airOptions": {"android": {"listen": true}}}`).
		WithDescriptor("src/Game-app.xml", "com.example.game").
		Build()
	r, recorder := newTestResolver(fs)

	resolved, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "android"}`))
	require.Nil(t, resolved)
	require.ErrorIs(t, err, ErrMissingBundleOutput)
	require.Equal(t, []string{
		`Failed to debug SWF. Error reading output path in asconfig.json for platform "android".`,
	}, recorder.Messages())
}

func TestResolveAttach_DescriptorReadError(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		fs := workspace.NewWorkspaceBuilder(testRoot).
			WithManifest(`{"application": "src/Game-app.xml", "airOptions": {"output": "bin/Game.apk"}}`).
			Build()
		r, recorder := newTestResolver(fs)

		_, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "android"}`))
		require.ErrorIs(t, err, ErrDescriptorRead)
		require.Equal(t, []string{"Failed to debug SWF. Error reading Game-app.xml"}, recorder.Messages())
	})

	t.Run("unreadable file", func(t *testing.T) {
		fs := workspace.NewWorkspaceBuilder(testRoot).
			WithManifest(`{"application": {"android": "src/Game-android-app.xml"}, "airOptions": {"output": "bin/Game.apk"}}`).
			Build()
		fs.AddUnreadableFile("/workspace/src/Game-android-app.xml")
		r, recorder := newTestResolver(fs)

		_, err := r.Resolve(ctxBackground(), testRoot, decodeRequest(t, `{"request": "attach", "platform": "android"}`))
		require.ErrorIs(t, err, ErrDescriptorRead)
		require.Equal(t, KindDescriptorReadError, KindOf(err))
		require.Equal(t, []string{"Failed to debug SWF. Error reading Game-android-app.xml"}, recorder.Messages())
	})
}
