package repositories

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"reels/models"
)

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// Create stores the metadata of a freshly uploaded video. Counters always
// start at zero whatever the caller put in them.
func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	video.Title = strings.TrimSpace(video.Title)
	if video.Title == "" {
		return fmt.Errorf("video title is required: %w", ErrInvalidArgument)
	}
	if video.UserID == 0 || video.Filename == "" {
		return fmt.Errorf("video owner and filename are required: %w", ErrInvalidArgument)
	}
	video.ViewsCount, video.LikesCount, video.CommentsCount, video.SharesCount = 0, 0, 0, 0
	video.IsActive = true

	return r.db.WithContext(ctx).Omit("User").Create(video).Error
}

func (r *videoRepository) FindByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("User").First(&video, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &video, nil
}

func (r *videoRepository) FindByFilename(ctx context.Context, filename string) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&video).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &video, nil
}

// SoftDelete hides a video from the feed. Only the owner or an admin may do
// it; likes and comments stay in place.
func (r *videoRepository) SoftDelete(ctx context.Context, videoID, actorID uint, isAdmin bool) error {
	var video models.Video
	err := r.db.WithContext(ctx).Select("id", "user_id").
		Where("id = ? AND is_active = ?", videoID, true).
		First(&video).Error
	if err != nil {
		return notFound(err)
	}
	if video.UserID != actorID && !isAdmin {
		return fmt.Errorf("video %d belongs to another user: %w", videoID, ErrForbidden)
	}
	return r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ?", videoID).
		Update("is_active", false).Error
}
