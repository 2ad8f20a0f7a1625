package dto

import (
	"time"

	"reels/models"
)

// Profile is the public view of a user plus their latest videos.
type Profile struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	FullName       string         `json:"full_name"`
	Bio            string         `json:"bio"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	FollowersCount int64          `json:"followers_count"`
	FollowingCount int64          `json:"following_count"`
	CreatedAt      time.Time      `json:"created_at"`
	IsFollowing    bool           `json:"is_following"`
	Videos         []VideoSummary `json:"videos"`
}

func NewProfile(u models.User, videos []VideoSummary, isFollowing bool) Profile {
	if videos == nil {
		videos = []VideoSummary{}
	}
	return Profile{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
		IsFollowing:    isFollowing,
		Videos:         videos,
	}
}
