package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reels/database"
	"reels/dto"
	"reels/models"
)

const decrementClamped = "CASE WHEN %[1]s > 0 THEN %[1]s - 1 ELSE 0 END"

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge follower -> followed and bumps both counters in the
// same transaction.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID uint) (dto.FollowResult, error) {
	if followerID == followedID {
		return dto.FollowResult{}, fmt.Errorf("users cannot follow themselves: %w", ErrInvalidArgument)
	}

	var result dto.FollowResult
	err := database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockUsers(tx, followerID, followedID); err != nil {
			return err
		}

		edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
		if err := tx.Create(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("already following: %w", ErrConflict)
			}
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", followedID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}

		var err error
		result, err = readFollowResult(tx, followerID, followedID, true)
		return err
	})
	return result, err
}

// Unfollow removes the edge if present. A missing edge is not an error.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID uint) (dto.FollowResult, error) {
	var result dto.FollowResult
	err := database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockUsers(tx, followerID, followedID); err != nil {
			return err
		}

		res := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", followedID).
				UpdateColumn("followers_count", gorm.Expr(fmt.Sprintf(decrementClamped, "followers_count"))).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", followerID).
				UpdateColumn("following_count", gorm.Expr(fmt.Sprintf(decrementClamped, "following_count"))).Error; err != nil {
				return err
			}
		}

		var err error
		result, err = readFollowResult(tx, followerID, followedID, false)
		return err
	})
	return result, err
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// ReconcileCounts recomputes both follow counters from the edge rows.
func (r *followRepository) ReconcileCounts(ctx context.Context) error {
	return database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Exec(`UPDATE users SET
			followers_count = (SELECT COUNT(*) FROM follows WHERE follows.followed_id = users.id),
			following_count = (SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id)`).Error
	})
}

// lockUsers verifies both users exist and takes row locks in id order so
// two opposite follows cannot deadlock.
func lockUsers(tx *gorm.DB, a, b uint) error {
	ids := []uint{a, b}
	switch {
	case a == b:
		ids = []uint{a}
	case b < a:
		ids = []uint{b, a}
	}
	var users []models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id IN ?", ids).
		Order("id").
		Find(&users).Error
	if err != nil {
		return err
	}
	if len(users) != len(ids) {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	return nil
}

func readFollowResult(tx *gorm.DB, followerID, followedID uint, following bool) (dto.FollowResult, error) {
	var followed, follower models.User
	if err := tx.Select("followers_count", "following_count").First(&followed, followedID).Error; err != nil {
		return dto.FollowResult{}, notFound(err)
	}
	if err := tx.Select("following_count").First(&follower, followerID).Error; err != nil {
		return dto.FollowResult{}, notFound(err)
	}
	return dto.FollowResult{
		Following:      following,
		FollowersCount: followed.FollowersCount,
		FollowingCount: follower.FollowingCount,
	}, nil
}
