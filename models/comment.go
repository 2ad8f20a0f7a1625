package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	User      User
	VideoID   uint      `gorm:"not null;index:idx_comments_video_created,priority:1"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_comments_video_created,priority:2"`
}

// TableName overrides the table name used by GORM
func (Comment) TableName() string {
	return "comments"
}
