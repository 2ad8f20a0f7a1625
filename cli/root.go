package cli

import (
	"github.com/spf13/cobra"

	"reels/config"
	"reels/logger"
)

// RootOptions holds global flags and the configuration every command shares.
type RootOptions struct {
	LogLevel string
	Config   *config.Config
}

// NewRootCommand creates the root command for the reels binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "reels",
		Short: "Short-video feed service",
		Long:  "Reels serves a short-video feed with likes, comments, views and follows.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			logger.InitLogger(cfg.LogLevel, cfg.LogFile)
			opts.Config = cfg
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewReconcileCommand(opts))
	cmd.AddCommand(NewScheduleCommand(opts))

	return cmd
}
