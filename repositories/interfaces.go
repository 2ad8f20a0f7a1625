package repositories

import (
	"context"

	"reels/dto"
	"reels/models"
)

// UserRepository is the identity store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint, active bool) error
}

// FollowRepository is the social graph. It is the only writer of
// followers_count and following_count.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) (dto.FollowResult, error)
	Unfollow(ctx context.Context, followerID, followedID uint) (dto.FollowResult, error)
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	ReconcileCounts(ctx context.Context) error
}

// VideoRepository is the media catalog.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	FindByID(ctx context.Context, id uint) (*models.Video, error)
	FindByFilename(ctx context.Context, filename string) (*models.Video, error)
	SoftDelete(ctx context.Context, videoID, actorID uint, isAdmin bool) error
}

// EngagementRepository is the engagement ledger. It is the only writer of
// the video counter columns.
type EngagementRepository interface {
	ToggleLike(ctx context.Context, userID, videoID uint) (dto.LikeResult, error)
	AddComment(ctx context.Context, userID, videoID uint, content string) (*models.Comment, error)
	RecordView(ctx context.Context, videoID uint) (int64, error)
	ReconcileCounts(ctx context.Context) error
}

// FeedRepository assembles read-only views.
type FeedRepository interface {
	ListFeed(ctx context.Context, page, pageSize int) (*dto.FeedPage, error)
	ListByUser(ctx context.Context, username string, page, pageSize int) (*dto.FeedPage, error)
	ListComments(ctx context.Context, videoID uint, limit int) ([]dto.CommentDTO, error)
}
