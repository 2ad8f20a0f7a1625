package dto

import (
	"time"

	"reels/models"
)

type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type ViewResult struct {
	ViewsCount int64 `json:"views_count"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentDTO expects c.User to be loaded.
func NewCommentDTO(c models.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		Content:   c.Content,
		User:      NewUserRef(c.User),
		CreatedAt: c.CreatedAt,
	}
}

type FollowResult struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}
