package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindApplicationID(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		want       string
		wantFound  bool
	}{
		{"reverse domain", "<application><id>com.example.Game</id></application>", "com.example.Game", true},
		{"first match wins", "<id>first.app</id>\n<id>second.app</id>", "first.app", true},
		{"plus and underscore allowed", "<id>com.example+beta_2</id>", "com.example+beta_2", true},
		{"not validated as a domain", "<id>..</id>", "..", true},
		{"hyphen not allowed", "<id>com.example-game</id>", "", false},
		{"whitespace not allowed", "<id> com.example </id>", "", false},
		{"empty id", "<id></id>", "", false},
		{"no id", "<application><filename>Game</filename></application>", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := findApplicationID(tt.descriptor)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSynthesizeDescriptorPath(t *testing.T) {
	output := "bin/Game.debug.swf"
	mainClass := "src/com/example/Main.as"

	got, ok := synthesizeDescriptorPath(&output, &mainClass)
	require.True(t, ok)
	require.Equal(t, "bin/Game-app.xml", got)

	got, ok = synthesizeDescriptorPath(nil, &mainClass)
	require.True(t, ok)
	require.Equal(t, "src/com/example/Main-app.xml", got)

	bare := "Game"
	got, ok = synthesizeDescriptorPath(&bare, nil)
	require.True(t, ok)
	require.Equal(t, "Game-app.xml", got)

	_, ok = synthesizeDescriptorPath(nil, nil)
	require.False(t, ok)
}

func TestReplaceExt(t *testing.T) {
	require.Equal(t, "src/Main.swf", replaceExt("src/Main.as", extSWF))
	require.Equal(t, "src/Main.swf", replaceExt("src/Main.mxml", extSWF))
	require.Equal(t, "art/Game.v2.swf", replaceExt("art/Game.v2.fla", extSWF))
	require.Equal(t, "src/Main.swf", replaceExt("src/Main", extSWF))
}

func TestAbsPath(t *testing.T) {
	require.Equal(t, "/workspace/libs", absPath("/workspace", "libs"))
	require.Equal(t, "/workspace/libs", absPath("/workspace", "./libs/"))
	require.Equal(t, "/opt/sdk/frameworks", absPath("/workspace", "/opt/sdk//frameworks"))
}
