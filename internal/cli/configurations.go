package cli

import (
	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/launchconfig"
	"github.com/jakoblorz/go-swfdebug/internal/render"
	"github.com/spf13/cobra"
)

// ConfigurationsCommand handles the configurations command
type ConfigurationsCommand struct {
	fs           filesystem.FileSystem
	env          *environment
	workspaceDir string
	format       string
}

// NewConfigurationsCommand creates a new configurations command
func NewConfigurationsCommand(fs filesystem.FileSystem, env *environment) *cobra.Command {
	cmd := &ConfigurationsCommand{
		fs:  fs,
		env: env,
	}

	cobraCmd := &cobra.Command{
		Use:   "configurations",
		Short: "Print the initial debug configurations for the workspace",
		Long: `Prints the debug configurations offered for a new launch.json.
Outside of a workspace the list is empty.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.workspaceDir, "workspace", "w", "", "Workspace root (default: "+envWorkspace+" or the nearest directory containing asconfig.json)")
	cobraCmd.Flags().StringVar(&cmd.format, "format", "", "Output format: json or yaml (default: "+envFormat+" or json)")

	return cobraCmd
}

// Run executes the configurations command
func (c *ConfigurationsCommand) Run(cmd *cobra.Command, args []string) error {
	format := c.format
	if format == "" {
		format = c.env.Get(envFormat)
	}
	parsed, err := render.ParseFormat(format)
	if err != nil {
		return err
	}

	// no workspace is not an error here
	root, err := detectWorkspaceRoot(c.fs, c.env, c.workspaceDir)
	if err != nil {
		root = ""
	}

	return render.RenderAll(cmd.OutOrStdout(), parsed, launchconfig.InitialConfigurations(root))
}
