package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/launchconfig"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
	"github.com/jakoblorz/go-swfdebug/internal/tui"
	"github.com/jakoblorz/go-swfdebug/internal/workspace"
	"github.com/spf13/cobra"
)

// InitCommand handles the init command
type InitCommand struct {
	fs           filesystem.FileSystem
	env          *environment
	workspaceDir string
	force        bool
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, env *environment) *cobra.Command {
	cmd := &InitCommand{
		fs:  fs,
		env: env,
	}

	cobraCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .vscode/launch.json",
		Long: `Writes .vscode/launch.json with a single "Launch SWF" configuration.
Everything else is filled in by "swfdebug resolve" from asconfig.json.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.workspaceDir, "workspace", "w", "", "Workspace root (default: "+envWorkspace+" or the nearest directory containing asconfig.json)")
	cobraCmd.Flags().BoolVar(&cmd.force, "force", false, "Overwrite an existing launch.json")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	root, err := detectWorkspaceRoot(c.fs, c.env, c.workspaceDir)
	if err != nil {
		return err
	}

	path, err := launchconfig.WriteStarter(c.fs, root, c.force)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("✓ Created "+path))
	return nil
}

// detectWorkspaceRoot resolves the workspace for commands that need an
// existing one.
func detectWorkspaceRoot(fs filesystem.FileSystem, env *environment, dir string) (string, error) {
	if dir == "" {
		dir = env.Get(envWorkspace)
	}

	if dir != "" {
		dir = filepath.Clean(dir)
		if !fs.Exists(filepath.Join(dir, manifest.FileName)) {
			return "", fmt.Errorf("workspace %s does not contain %s", dir, manifest.FileName)
		}
		return dir, nil
	}

	ws := workspace.New(fs)
	if err := ws.Detect(); err != nil {
		return "", fmt.Errorf("failed to detect workspace: %w", err)
	}
	return ws.RootPath, nil
}
