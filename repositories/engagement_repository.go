package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reels/database"
	"reels/dto"
	"reels/models"
)

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ToggleLike flips the like state of (userID, videoID) and adjusts
// likes_count in the same transaction.
//
// The insert is attempted first with ON CONFLICT DO NOTHING. When no row was
// inserted the pair is already liked, which also covers a concurrent insert
// by the same user winning the race, and the like is removed instead.
func (r *engagementRepository) ToggleLike(ctx context.Context, userID, videoID uint) (dto.LikeResult, error) {
	var result dto.LikeResult
	err := database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockActiveVideo(tx, videoID); err != nil {
			return err
		}

		inserted, err := insertLike(tx, userID, videoID)
		if err != nil {
			return err
		}

		if inserted {
			err = tx.Model(&models.Video{}).Where("id = ?", videoID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
		} else {
			res := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.Like{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				err = tx.Model(&models.Video{}).Where("id = ?", videoID).
					UpdateColumn("likes_count", gorm.Expr(fmt.Sprintf(decrementClamped, "likes_count"))).Error
			}
		}
		if err != nil {
			return err
		}

		count, err := readCounter(tx, videoID, "likes_count")
		if err != nil {
			return err
		}
		result = dto.LikeResult{Liked: inserted, LikesCount: count}
		return nil
	})
	if err != nil {
		return dto.LikeResult{}, notFound(err)
	}
	return result, nil
}

// insertLike reports whether a new like row was created. An existing row
// is skipped by ON CONFLICT DO NOTHING, so the transaction stays usable.
func insertLike(tx *gorm.DB, userID, videoID uint) (bool, error) {
	like := models.Like{UserID: userID, VideoID: videoID}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AddComment appends a comment and bumps comments_count atomically. A
// missing video is reported before empty content.
func (r *engagementRepository) AddComment(ctx context.Context, userID, videoID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)

	comment := &models.Comment{UserID: userID, VideoID: videoID, Content: content}
	err := database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockActiveVideo(tx, videoID); err != nil {
			return err
		}
		if content == "" {
			return fmt.Errorf("comment content is required: %w", ErrInvalidArgument)
		}
		comment.ID = 0
		if err := tx.Omit("User").Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Video{}).Where("id = ?", videoID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error; err != nil {
			return err
		}
		return tx.First(&comment.User, userID).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

// RecordView increments views_count unconditionally. Views are not
// deduplicated; repeated calls from the same client all count.
func (r *engagementRepository) RecordView(ctx context.Context, videoID uint) (int64, error) {
	var count int64
	err := database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).
			Where("id = ? AND is_active = ?", videoID, true).
			UpdateColumn("views_count", gorm.Expr("views_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("video %d: %w", videoID, ErrNotFound)
		}
		var err error
		count, err = readCounter(tx, videoID, "views_count")
		return err
	})
	return count, err
}

// ReconcileCounts rewrites likes_count and comments_count from the fact rows.
// views_count has no backing rows and is left alone.
func (r *engagementRepository) ReconcileCounts(ctx context.Context) error {
	return database.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Exec(`UPDATE videos SET
			likes_count = (SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id),
			comments_count = (SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id)`).Error
	})
}

// lockActiveVideo takes a row lock on the video so concurrent engagement on
// the same video serializes. SQLite ignores the locking clause and relies on
// its database-wide write lock.
func lockActiveVideo(tx *gorm.DB, videoID uint) error {
	var video models.Video
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND is_active = ?", videoID, true).
		First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("video %d: %w", videoID, ErrNotFound)
		}
		return err
	}
	return nil
}

func readCounter(tx *gorm.DB, videoID uint, column string) (int64, error) {
	var count int64
	err := tx.Model(&models.Video{}).
		Select(column).
		Where("id = ?", videoID).
		Scan(&count).Error
	return count, err
}
