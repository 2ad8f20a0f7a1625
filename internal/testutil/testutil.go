package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reels/database"
	"reels/models"
)

var seq atomic.Int64

// NewDB opens a migrated SQLite database private to the test.
func NewDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Options{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "reels_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { db.Close() })
	return db
}

// CreateUser inserts a user with a unique username derived from name.
func CreateUser(t *testing.T, db *database.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     name,
		Email:        fmt.Sprintf("%s@example.com", name),
		FullName:     "User " + name,
		PasswordHash: "x",
		Active:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateVideo inserts an active video owned by owner. createdAt may be zero.
func CreateVideo(t *testing.T, db *database.DB, owner *models.User, title string, createdAt time.Time) *models.Video {
	t.Helper()

	video := &models.Video{
		UserID:    owner.ID,
		Title:     title,
		Filename:  fmt.Sprintf("video-%d.mp4", seq.Add(1)),
		IsActive:  true,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Omit("User").Create(video).Error)
	return video
}

// Now is a UTC timestamp truncated to the millisecond so it survives a
// round trip through either database.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
