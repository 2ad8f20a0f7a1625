package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reels/auth"
	"reels/models"
	"reels/repositories"
)

const adminUsername = "admin"

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	SeedAdmin bool
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update every table of the service.

With --seed-admin an "admin" account is created from ADMIN_PASSWORD unless
one already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := OpenApp(opts.Config)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.DB.Migrate(); err != nil {
				return err
			}
			logrus.Info("Schema migrated")

			if !opts.SeedAdmin {
				return nil
			}
			return seedAdmin(cmd.Context(), app.Users, auth.NewHasher(), opts.Config.AdminPassword)
		},
	}

	cmd.Flags().BoolVar(&opts.SeedAdmin, "seed-admin", false, "create the default admin user")

	return cmd
}

// seedAdmin creates the admin account. An existing one is left untouched.
func seedAdmin(ctx context.Context, users repositories.UserRepository, hasher auth.Hasher, password string) error {
	if password == "" {
		return errors.New("ADMIN_PASSWORD must be set to seed the admin user")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	err = users.Create(ctx, &models.User{
		Username:     adminUsername,
		Email:        "admin@reels.local",
		FullName:     "Administrator",
		PasswordHash: hash,
	})
	if errors.Is(err, repositories.ErrConflict) {
		logrus.Info("Admin user already exists, skipping seed")
		return nil
	}
	if err != nil {
		return err
	}
	logrus.Info("Admin user created")
	return nil
}
