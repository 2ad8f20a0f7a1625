package dto

import (
	"time"

	"reels/models"
)

// UserRef is the owner snapshot embedded in feed items and comments.
type UserRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type VideoStats struct {
	ViewsCount    int64 `json:"views_count"`
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	SharesCount   int64 `json:"shares_count"`
}

// VideoSummary is one feed item.
type VideoSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Filename    string     `json:"filename"`
	VideoURL    string     `json:"video_url"`
	User        UserRef    `json:"user"`
	Stats       VideoStats `json:"stats"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FeedPage is a single page of the feed.
type FeedPage struct {
	Videos  []VideoSummary `json:"videos"`
	HasNext bool           `json:"has_next"`
	HasPrev bool           `json:"has_prev"`
	NextNum *int           `json:"next_num"`
	PrevNum *int           `json:"prev_num"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	Total   int64          `json:"total"`
}

func NewUserRef(u models.User) UserRef {
	return UserRef{ID: u.ID, Username: u.Username, FullName: u.FullName}
}

// NewVideoSummary expects v.User to be loaded.
func NewVideoSummary(v models.Video) VideoSummary {
	return VideoSummary{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Filename:    v.Filename,
		VideoURL:    v.URL(),
		User:        NewUserRef(v.User),
		Stats: VideoStats{
			ViewsCount:    v.ViewsCount,
			LikesCount:    v.LikesCount,
			CommentsCount: v.CommentsCount,
			SharesCount:   v.SharesCount,
		},
		CreatedAt: v.CreatedAt,
	}
}

// NewFeedPage fills in the pagination fields for a page of items.
func NewFeedPage(items []VideoSummary, page, pageSize int, total int64) *FeedPage {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	fp := &FeedPage{
		Videos:  items,
		HasNext: page < pages,
		HasPrev: page > 1,
		Page:    page,
		Pages:   pages,
		Total:   total,
	}
	if fp.Videos == nil {
		fp.Videos = []VideoSummary{}
	}
	if fp.HasNext {
		n := page + 1
		fp.NextNum = &n
	}
	if fp.HasPrev {
		p := page - 1
		fp.PrevNum = &p
	}
	return fp
}
