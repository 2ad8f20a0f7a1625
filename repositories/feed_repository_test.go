package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reels/internal/testutil"
	"reels/models"
)

func TestListFeedPaginationPreservesOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFeedRepository(db.DB)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	base := testutil.Now().Add(-time.Hour)

	var created []*models.Video
	for i := 0; i < 23; i++ {
		// Pairs share a timestamp so the id tie-break is exercised.
		created = append(created, testutil.CreateVideo(t, db, owner, fmt.Sprintf("v%02d", i), base.Add(time.Duration(i/2)*time.Minute)))
	}
	hidden := testutil.CreateVideo(t, db, owner, "hidden", base.Add(2*time.Hour))
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	page1, err := repo.ListFeed(ctx, 1, 10)
	require.NoError(t, err)
	page2, err := repo.ListFeed(ctx, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(23), page1.Total)
	assert.Equal(t, 3, page1.Pages)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)
	require.NotNil(t, page1.NextNum)
	assert.Equal(t, 2, *page1.NextNum)
	assert.Nil(t, page1.PrevNum)
	assert.True(t, page2.HasPrev)

	var ids []uint
	for _, item := range append(page1.Videos, page2.Videos...) {
		ids = append(ids, item.ID)
	}
	require.Len(t, ids, 20)

	// Newest first, ties by id descending.
	for i := 0; i < 20; i++ {
		assert.Equal(t, created[22-i].ID, ids[i], "position %d", i)
	}

	seen := map[uint]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "video %d repeated across pages", id)
		seen[id] = true
		assert.NotEqual(t, hidden.ID, id)
	}
}

func TestListFeedEmbedsOwnerAndCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFeedRepository(db.DB)
	ledger := NewEngagementRepository(db.DB)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	fan := testutil.CreateUser(t, db, "fan")
	v := testutil.CreateVideo(t, db, owner, "clip", testutil.Now())

	_, err := ledger.ToggleLike(ctx, fan.ID, v.ID)
	require.NoError(t, err)
	_, err = ledger.RecordView(ctx, v.ID)
	require.NoError(t, err)

	page, err := repo.ListFeed(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)

	item := page.Videos[0]
	assert.Equal(t, "owner", item.User.Username)
	assert.Equal(t, "User owner", item.User.FullName)
	assert.Equal(t, int64(1), item.Stats.LikesCount)
	assert.Equal(t, int64(1), item.Stats.ViewsCount)
	assert.Equal(t, "/video/"+v.Filename, item.VideoURL)
}

func TestListFeedEdgePages(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFeedRepository(db.DB)
	ctx := context.Background()

	empty, err := repo.ListFeed(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, empty.Videos)
	assert.NotNil(t, empty.Videos)
	assert.Equal(t, 0, empty.Pages)
	assert.False(t, empty.HasNext)

	owner := testutil.CreateUser(t, db, "owner")
	testutil.CreateVideo(t, db, owner, "only", testutil.Now())

	clamped, err := repo.ListFeed(ctx, -3, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Len(t, clamped.Videos, 1)

	past, err := repo.ListFeed(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, past.Videos)
	assert.False(t, past.HasNext)
	assert.True(t, past.HasPrev)
}

func TestListByUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFeedRepository(db.DB)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreateVideo(t, db, alice, "a1", testutil.Now())
	testutil.CreateVideo(t, db, bob, "b1", testutil.Now())
	testutil.CreateVideo(t, db, alice, "a2", testutil.Now().Add(time.Second))

	page, err := repo.ListByUser(ctx, "alice", 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Videos, 2)
	assert.Equal(t, "a2", page.Videos[0].Title)
	assert.Equal(t, "a1", page.Videos[1].Title)
	for _, v := range page.Videos {
		assert.Equal(t, alice.ID, v.User.ID)
	}

	_, err = repo.ListByUser(ctx, "nobody", 1, 20)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsNewestFirstWithLimit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFeedRepository(db.DB)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "u")
	v := testutil.CreateVideo(t, db, u, "clip", testutil.Now())
	base := testutil.Now()
	for i := 0; i < 55; i++ {
		c := models.Comment{UserID: u.ID, VideoID: v.ID, Content: fmt.Sprintf("c%d", i), CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, db.Omit("User").Create(&c).Error)
	}

	comments, err := repo.ListComments(ctx, v.ID, DefaultCommentLimit)
	require.NoError(t, err)
	require.Len(t, comments, 50)
	assert.Equal(t, "c54", comments[0].Content)
	assert.Equal(t, "c5", comments[49].Content)
	assert.Equal(t, "u", comments[0].User.Username)

	none, err := repo.ListComments(ctx, 999, DefaultCommentLimit)
	require.NoError(t, err)
	assert.Empty(t, none)
}
