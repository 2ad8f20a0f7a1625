package models

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table. Order matters: users before
// the tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Video{}, &Like{}, &Comment{}, &Follow{})
}
