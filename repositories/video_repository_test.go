package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reels/internal/testutil"
	"reels/models"
)

func TestCreateVideoResetsCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db.DB)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	v := &models.Video{
		UserID:     owner.ID,
		Title:      "  hello  ",
		Filename:   "abc.mp4",
		FileSize:   1024,
		LikesCount: 50,
		ViewsCount: 9,
	}
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, int64(0), got.LikesCount)
	assert.Equal(t, int64(0), got.ViewsCount)
	assert.True(t, got.IsActive)
	assert.Equal(t, "owner", got.User.Username)

	byName, err := repo.FindByFilename(ctx, "abc.mp4")
	require.NoError(t, err)
	assert.Equal(t, v.ID, byName.ID)
}

func TestCreateVideoValidation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db.DB)
	owner := testutil.CreateUser(t, db, "owner")

	err := repo.Create(context.Background(), &models.Video{UserID: owner.ID, Title: "  ", Filename: "x.mp4"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db.DB)
	feed := NewFeedRepository(db.DB)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	stranger := testutil.CreateUser(t, db, "stranger")
	admin := testutil.CreateUser(t, db, "admin")
	v1 := testutil.CreateVideo(t, db, owner, "one", testutil.Now())
	v2 := testutil.CreateVideo(t, db, owner, "two", testutil.Now())

	assert.ErrorIs(t, repo.SoftDelete(ctx, v1.ID, stranger.ID, false), ErrForbidden)
	require.NoError(t, repo.SoftDelete(ctx, v1.ID, owner.ID, false))
	require.NoError(t, repo.SoftDelete(ctx, v2.ID, admin.ID, true))
	assert.ErrorIs(t, repo.SoftDelete(ctx, v1.ID, owner.ID, false), ErrNotFound)

	page, err := feed.ListFeed(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Videos)

	// The row stays, only hidden.
	got, err := repo.FindByID(ctx, v1.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
