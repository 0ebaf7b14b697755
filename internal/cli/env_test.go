package cli

import (
	"testing"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_ProcessWins(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/.env", []byte("SWFDEBUG_FORMAT=yaml\nexport SWFDEBUG_WORKSPACE=/projects/game\n"))

	process := map[string]string{"SWFDEBUG_FORMAT": "text"}
	env := newEnvironment(fs)
	env.lookup = func(key string) (string, bool) {
		value, ok := process[key]
		return value, ok
	}

	require.NoError(t, env.load("/workspace/.env", true))
	require.Equal(t, "text", env.Get(envFormat))
	require.Equal(t, "/projects/game", env.Get(envWorkspace))
	require.Equal(t, "", env.Get("UNSET"))
}

func TestEnvironment_Load(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	env := newEnvironment(fs)

	require.NoError(t, env.load("", true))
	require.NoError(t, env.load("/workspace/.env", false))
	require.EqualError(t, env.load("/workspace/.env", true), "env file not found: /workspace/.env")

	fs.AddUnreadableFile("/workspace/.env")
	require.ErrorContains(t, env.load("/workspace/.env", false), "failed to read env file /workspace/.env")
}
