package models

import "time"

// Follow is a directed edge from FollowerID to FollowedID. At most one edge
// exists per ordered pair.
type Follow struct {
	ID         uint      `gorm:"primaryKey"`
	FollowerID uint      `gorm:"not null;uniqueIndex:unique_follow;index"`
	FollowedID uint      `gorm:"not null;uniqueIndex:unique_follow;index"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followed User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
