package cli

import (
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/launchconfig"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
	"github.com/jakoblorz/go-swfdebug/internal/models"
	"github.com/jakoblorz/go-swfdebug/internal/notify"
	"github.com/jakoblorz/go-swfdebug/internal/render"
	"github.com/jakoblorz/go-swfdebug/internal/resolver"
	"github.com/jakoblorz/go-swfdebug/internal/workspace"
	"github.com/spf13/cobra"
)

// PlatformPicker asks the user for an attach platform. An empty result means
// the user aborted.
type PlatformPicker interface {
	Pick(declared []models.Platform) (models.Platform, error)
}

// ResolveCommand handles the resolve command
type ResolveCommand struct {
	fs       filesystem.FileSystem
	notifier notify.Notifier
	log      logr.Logger
	picker   PlatformPicker
	env      *environment

	workspaceDir    string
	manifestName    string
	configFile      string
	launchJSON      string
	name            string
	request         string
	program         string
	profile         string
	platform        string
	versionPlatform string
	extdir          string
	format          string
	pickPlatform    bool
}

// NewResolveCommand creates a new resolve command
func NewResolveCommand(fs filesystem.FileSystem, notifier notify.Notifier, log logr.Logger, picker PlatformPicker, env *environment) *cobra.Command {
	cmd := &ResolveCommand{
		fs:       fs,
		notifier: notifier,
		log:      log,
		picker:   picker,
		env:      env,
	}

	cobraCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Fill in a SWF debug configuration from asconfig.json",
		Long: `Resolves a sparse SWF debug configuration against the workspace's
asconfig.json and prints the complete configuration.

The starting configuration comes from --config, from an entry of launch.json
(--launch-json, --name) or is empty. Flags override fields of that
configuration. Fields that are already set are never replaced.`,
		Example: `  # Resolve a launch configuration for the current workspace
  swfdebug resolve

  # Resolve an attach configuration for Android as YAML
  swfdebug resolve --request attach --platform android --format yaml

  # Resolve the "Launch iOS" entry of .vscode/launch.json
  swfdebug resolve --name "Launch iOS"

  # Frame the result as a DAP launch request
  swfdebug resolve --format dap`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVarP(&cmd.workspaceDir, "workspace", "w", "", "Workspace root (default: "+envWorkspace+" or the nearest directory containing asconfig.json)")
	flags.StringVar(&cmd.manifestName, "manifest", manifest.FileName, "Manifest file name inside the workspace")
	flags.StringVar(&cmd.configFile, "config", "", "JSON or JSONC file holding one debug configuration")
	flags.StringVar(&cmd.launchJSON, "launch-json", "", "launch.json to pick the configuration from (default: .vscode/launch.json when --name is set)")
	flags.StringVar(&cmd.name, "name", "", "Name of the launch.json configuration")
	flags.StringVar(&cmd.request, "request", "", "Request kind: launch or attach")
	flags.StringVar(&cmd.program, "program", "", "Program to launch (SWF or application descriptor)")
	flags.StringVar(&cmd.profile, "profile", "", "AIR runtime profile")
	flags.StringVar(&cmd.platform, "platform", "", "Attach platform: android, ios, windows or mac")
	flags.StringVar(&cmd.versionPlatform, "version-platform", "", "Launch version platform: AND, IOS, WIN or MAC")
	flags.StringVar(&cmd.extdir, "extdir", "", "Unpacked native extension directory")
	flags.StringVar(&cmd.format, "format", "", "Output format: json, yaml, text or dap (default: "+envFormat+" or json)")
	flags.BoolVar(&cmd.pickPlatform, "pick-platform", false, "Interactively pick the attach platform when none is set")

	return cobraCmd
}

// Run executes the resolve command
func (c *ResolveCommand) Run(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(c.valueOrEnv(c.format, envFormat))
	if err != nil {
		return err
	}

	root, err := c.workspaceRoot()
	if err != nil {
		return err
	}

	req, err := c.baseRequest(cmd, root)
	if err != nil {
		return err
	}
	if err := c.applyFlags(cmd, req); err != nil {
		return err
	}

	if c.pickPlatform && req.Kind() == models.RequestAttach && req.Platform == "" {
		platform, err := c.picker.Pick(c.declaredPlatforms(root))
		if err != nil {
			return err
		}
		if platform == "" {
			return fmt.Errorf("no platform selected")
		}
		req.Platform = platform
	}

	r := resolver.New(c.fs, manifest.NewJSONCParser(), c.notifier,
		resolver.WithManifestName(c.manifestName),
		resolver.WithLogger(c.log.WithName("resolver")),
	)
	resolved, err := r.Resolve(cmd.Context(), root, req)
	if err != nil {
		return err
	}

	return render.Render(cmd.OutOrStdout(), format, resolved)
}

func (c *ResolveCommand) valueOrEnv(value, key string) string {
	if value != "" {
		return value
	}
	return c.env.Get(key)
}

// workspaceRoot prefers the flag, then the environment, then walks up from
// the working directory. Without a manifest anywhere above, the working
// directory is used so the resolver can report the missing manifest.
func (c *ResolveCommand) workspaceRoot() (string, error) {
	if dir := c.valueOrEnv(c.workspaceDir, envWorkspace); dir != "" {
		return filepath.Clean(dir), nil
	}

	ws := workspace.New(c.fs, workspace.WithManifestName(c.manifestName))
	if err := ws.Detect(); err == nil {
		return ws.RootPath, nil
	}

	cwd, err := c.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}

func (c *ResolveCommand) baseRequest(cmd *cobra.Command, root string) (*models.DebugRequest, error) {
	if c.configFile != "" {
		if cmd.Flags().Changed("launch-json") || cmd.Flags().Changed("name") {
			return nil, fmt.Errorf("--config cannot be combined with --launch-json or --name")
		}
		return launchconfig.LoadRequest(c.fs, c.configFile)
	}

	launchPath := c.launchJSON
	if launchPath == "" && c.name != "" {
		launchPath = launchconfig.Path(root)
	}
	if launchPath == "" {
		return &models.DebugRequest{}, nil
	}

	launch, err := launchconfig.Load(c.fs, launchPath)
	if err != nil {
		return nil, err
	}
	found, err := launch.Find(c.name)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (c *ResolveCommand) applyFlags(cmd *cobra.Command, req *models.DebugRequest) error {
	flags := cmd.Flags()

	if flags.Changed("request") {
		kind, err := models.ParseRequestKind(c.request)
		if err != nil {
			return err
		}
		req.Request = kind
	}
	if flags.Changed("program") {
		req.Program = c.program
	}
	if flags.Changed("profile") {
		req.Profile = models.Profile(c.profile)
	}
	if flags.Changed("platform") {
		platform, err := models.ParsePlatform(c.platform)
		if err != nil {
			return err
		}
		req.Platform = platform
	}
	if flags.Changed("version-platform") {
		versionPlatform, err := models.ParseVersionPlatform(c.versionPlatform)
		if err != nil {
			return err
		}
		req.VersionPlatform = versionPlatform
	}
	if flags.Changed("extdir") {
		req.ExtDir = c.extdir
	}

	return nil
}

// declaredPlatforms lists the platforms asconfig.json mentions, best effort.
func (c *ResolveCommand) declaredPlatforms(root string) []models.Platform {
	data, err := c.fs.ReadFile(filepath.Join(root, c.manifestName))
	if err != nil {
		return nil
	}
	m, err := manifest.NewJSONCParser().Parse(data)
	if err != nil {
		c.log.V(1).Info("could not read platforms from manifest", "error", err.Error())
		return nil
	}
	return m.Platforms()
}
