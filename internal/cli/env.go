package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile = ".env"

	envWorkspace = "SWFDEBUG_WORKSPACE"
	envFormat    = "SWFDEBUG_FORMAT"
)

// environment layers a dotenv file under the process environment. Non-empty
// variables already set in the process win, as with godotenv.Load.
type environment struct {
	fs     filesystem.FileSystem
	lookup func(string) (string, bool)
	file   map[string]string
}

func newEnvironment(fs filesystem.FileSystem) *environment {
	return &environment{
		fs:     fs,
		lookup: os.LookupEnv,
	}
}

// load reads path. A missing file is only an error when it was asked for.
func (e *environment) load(path string, required bool) error {
	if path == "" {
		return nil
	}
	if !e.fs.Exists(path) {
		if required {
			return fmt.Errorf("env file not found: %s", path)
		}
		return nil
	}

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	e.file = values
	return nil
}

func (e *environment) Get(key string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	return e.file[key]
}
