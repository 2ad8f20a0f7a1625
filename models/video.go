package models

import "time"

// Video is an uploaded clip. The counter columns are caches: likes_count and
// comments_count always match the number of Like and Comment rows, while
// views_count is a plain counter with nothing behind it.
type Video struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index;<-:create" json:"user_id"`
	User          User      `json:"-"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Filename      string    `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	FileSize      int64     `json:"file_size"`
	Duration      int64     `json:"duration"`
	ThumbnailURL  string    `gorm:"size:255" json:"thumbnail_url,omitempty"`
	ViewsCount    int64     `gorm:"not null;default:0" json:"views_count"`
	LikesCount    int64     `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int64     `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int64     `gorm:"not null;default:0" json:"shares_count"`
	CreatedAt     time.Time `gorm:"index:idx_videos_feed,priority:2" json:"created_at"`
	IsActive      bool      `gorm:"not null;default:true;index:idx_videos_feed,priority:1" json:"is_active"`

	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name used by GORM
func (Video) TableName() string {
	return "videos"
}

// URL is the path the media is served from.
func (v Video) URL() string {
	return "/video/" + v.Filename
}
