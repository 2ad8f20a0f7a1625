package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reels/repositories"
)

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute denormalized counters from their rows",
		Long: `Recompute likes_count and comments_count of every video and the
follower counts of every user from the rows they summarize.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := OpenApp(rootOpts.Config)
			if err != nil {
				return err
			}
			defer app.Close()
			return reconcile(cmd.Context(), app.Engagement, app.Follows)
		},
	}
}

func reconcile(ctx context.Context, engagement repositories.EngagementRepository, follows repositories.FollowRepository) error {
	start := time.Now()
	if err := engagement.ReconcileCounts(ctx); err != nil {
		return fmt.Errorf("reconcile video counters: %w", err)
	}
	if err := follows.ReconcileCounts(ctx); err != nil {
		return fmt.Errorf("reconcile follow counters: %w", err)
	}
	logrus.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Counters reconciled")
	return nil
}
