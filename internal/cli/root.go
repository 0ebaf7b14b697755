package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/logger"
	"github.com/jakoblorz/go-swfdebug/internal/notify"
	"github.com/jakoblorz/go-swfdebug/internal/resolver"
	"github.com/jakoblorz/go-swfdebug/internal/tui"
	"github.com/spf13/cobra"
)

const envFileFlag = "env-file"

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, notifier notify.Notifier, log *logger.Logger, picker PlatformPicker) *cobra.Command {
	env := newEnvironment(fs)

	rootCmd := &cobra.Command{
		Use:   "swfdebug",
		Short: "Resolve SWF debug configurations from asconfig.json",
		Long: `A CLI tool that fills in SWF debug configurations.

Given a sparse launch or attach configuration, swfdebug reads the workspace's
asconfig.json and derives the program, profile, native extension directory,
application id and bundle the debugger needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString(envFileFlag)
			return env.load(path, cmd.Flags().Changed(envFileFlag))
		},
	}

	rootCmd.PersistentFlags().String(envFileFlag, defaultEnvFile, "Dotenv file providing SWFDEBUG_* defaults")
	log.AddLevelFlag(rootCmd.PersistentFlags())

	// Add subcommands
	rootCmd.AddCommand(NewResolveCommand(fs, notifier, log.Logger, picker, env))
	rootCmd.AddCommand(NewInitCommand(fs, env))
	rootCmd.AddCommand(NewConfigurationsCommand(fs, env))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	notifier := notify.NewTerminalNotifier(os.Stderr)
	log := logger.New("swfdebug")
	defer log.Flush()

	rootCmd := NewRootCommand(fs, notifier, log, tui.NewPlatformPicker(os.Stdin, os.Stderr))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// resolution failures have already been shown
		var resolveErr *resolver.Error
		if !errors.As(err, &resolveErr) {
			notifier.ShowError(err.Error())
		}
		log.V(1).Info("command failed", "error", err.Error())
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
