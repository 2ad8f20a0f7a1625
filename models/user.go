package models

import (
	"time"
)

// User represents a registered account. Follower and following counts are
// maintained by the follow graph and never written anywhere else.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email          string     `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash   string     `gorm:"size:256;not null" json:"-"`
	FullName       string     `gorm:"size:100;not null" json:"full_name"`
	Bio            string     `gorm:"type:text" json:"bio"`
	AvatarURL      string     `gorm:"size:255" json:"avatar_url,omitempty"`
	FollowersCount int64      `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int64      `gorm:"not null;default:0" json:"following_count"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	Active         bool       `gorm:"not null;default:true" json:"active"`

	Videos   []Video   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}
