package models

import "time"

// Like links one user to one video. The composite unique index is what
// guarantees a single like per pair, whatever the caller does.
type Like struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:unique_user_video_like"`
	VideoID   uint      `gorm:"not null;uniqueIndex:unique_user_video_like;index"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}
