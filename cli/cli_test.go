package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reels/auth"
	"reels/internal/testutil"
	"reels/models"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "reels", cmd.Use)

	logLevel := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logLevel)
	assert.Equal(t, "", logLevel.DefValue)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "reconcile", "schedule"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	migrate, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	seed := migrate.Flags().Lookup("seed-admin")
	require.NotNil(t, seed)
	assert.Equal(t, "false", seed.DefValue)
}

func TestSeedAdmin(t *testing.T) {
	app := newApp(testutil.NewDB(t))
	ctx := context.Background()
	hasher := auth.Hasher{Cost: bcrypt.MinCost}

	assert.Error(t, seedAdmin(ctx, app.Users, hasher, ""))

	require.NoError(t, seedAdmin(ctx, app.Users, hasher, "s3cret"))
	admin, err := app.Users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("s3cret", admin.PasswordHash))

	// A second seed keeps the existing account.
	require.NoError(t, seedAdmin(ctx, app.Users, hasher, "other"))
	again, err := app.Users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.True(t, hasher.Verify("s3cret", again.PasswordHash))
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := testutil.NewDB(t)
	app := newApp(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	video := testutil.CreateVideo(t, db, alice, "clip", testutil.Now())

	_, err := app.Engagement.ToggleLike(ctx, bob.ID, video.ID)
	require.NoError(t, err)
	_, err = app.Engagement.AddComment(ctx, bob.ID, video.ID, "hi")
	require.NoError(t, err)
	_, err = app.Follows.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Video{}).Where("id = ?", video.ID).
		UpdateColumns(map[string]any{"likes_count": 7, "comments_count": 0}).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).
		UpdateColumn("followers_count", 4).Error)

	require.NoError(t, reconcile(ctx, app.Engagement, app.Follows))

	var got models.Video
	require.NoError(t, db.First(&got, video.ID).Error)
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(1), got.CommentsCount)

	var owner models.User
	require.NoError(t, db.First(&owner, alice.ID).Error)
	assert.Equal(t, int64(1), owner.FollowersCount)
}

func TestNewScheduler(t *testing.T) {
	_, err := newScheduler(context.Background(), "not a schedule", func(context.Context) error { return nil })
	assert.Error(t, err)

	c, err := newScheduler(context.Background(), "@every 1h", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}
