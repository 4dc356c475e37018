package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpuigdom/campsched/internal/config"
	"github.com/mpuigdom/campsched/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfigDir string
	flagVerbose   bool
	flagYes       bool
	flagStart     string
	flagEnd       string
	flagOutput    string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campsched",
		Short: "Sync your university class schedule with Google Calendar",
		Long: `campsched scrapes your class schedule from the university's virtual
secretary and mirrors it into Google Calendar as events it owns and keeps
up to date across runs. It can also export the schedule to a universal
.ics file without any Google integration.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Override the configuration directory")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")

	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newConfigureCmd())
	cmd.AddCommand(newCleanCmd())

	return cmd
}

// configManager resolves the configuration directory, honoring --config-dir.
func configManager() (*config.Manager, error) {
	if flagConfigDir != "" {
		return config.NewManagerAt(flagConfigDir)
	}
	return config.NewManager()
}

// loadConfig loads the configuration, translating the missing-config case
// into a setup hint.
func loadConfig() (*config.Manager, *config.Config, error) {
	mgr, err := configManager()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := mgr.Load()
	if err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			return nil, nil, fmt.Errorf("campsched is not configured yet; run 'campsched configure' first")
		}
		return nil, nil, err
	}
	return mgr, cfg, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
