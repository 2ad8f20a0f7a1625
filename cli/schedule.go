package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run counter reconciliation on RECONCILE_SCHEDULE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := OpenApp(rootOpts.Config)
			if err != nil {
				return err
			}
			defer app.Close()

			c, err := newScheduler(ctx, rootOpts.Config.ReconcileSchedule, func(ctx context.Context) error {
				return reconcile(ctx, app.Engagement, app.Follows)
			})
			if err != nil {
				return err
			}

			c.Start()
			logrus.WithField("schedule", rootOpts.Config.ReconcileSchedule).Info("Scheduler started")
			<-ctx.Done()
			<-c.Stop().Done()
			logrus.Info("Scheduler stopped")
			return nil
		},
	}
}

// newScheduler registers job on the cron schedule. Runs never overlap.
func newScheduler(ctx context.Context, schedule string, job func(context.Context) error) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		if err := job(ctx); err != nil {
			logrus.WithError(err).Error("Scheduled reconcile failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return c, nil
}
