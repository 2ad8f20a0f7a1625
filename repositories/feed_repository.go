package repositories

import (
	"context"

	"gorm.io/gorm"

	"reels/dto"
	"reels/models"
)

const DefaultCommentLimit = 50

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// ListFeed returns one page of active videos, newest first. Ties on
// created_at are broken by id so the order is total and pages never overlap.
func (r *feedRepository) ListFeed(ctx context.Context, page, pageSize int) (*dto.FeedPage, error) {
	return r.listActive(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB { return q })
}

// ListByUser is ListFeed restricted to one owner.
func (r *feedRepository) ListByUser(ctx context.Context, username string, page, pageSize int) (*dto.FeedPage, error) {
	var owner models.User
	if err := r.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&owner).Error; err != nil {
		return nil, notFound(err)
	}
	return r.listActive(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", owner.ID)
	})
}

func (r *feedRepository) listActive(ctx context.Context, page, pageSize int, scope func(*gorm.DB) *gorm.DB) (*dto.FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	base := r.db.WithContext(ctx).Model(&models.Video{}).Where("is_active = ?", true).Scopes(scope)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var videos []models.Video
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoSummary, len(videos))
	for i, v := range videos {
		items[i] = dto.NewVideoSummary(v)
	}
	return dto.NewFeedPage(items, page, pageSize, total), nil
}

// ListComments returns at most limit comments on a video, newest first.
func (r *feedRepository) ListComments(ctx context.Context, videoID uint, limit int) ([]dto.CommentDTO, error) {
	if limit < 1 {
		limit = DefaultCommentLimit
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = dto.NewCommentDTO(c)
	}
	return out, nil
}
