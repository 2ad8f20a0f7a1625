package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"reels/auth"
	"reels/dto"
	"reels/monitoring"
	"reels/repositories"
)

// EngagementHandler serves likes, comments and views.
type EngagementHandler struct {
	Engagement repositories.EngagementRepository
	Feed       repositories.FeedRepository
}

func NewEngagementHandler(engagement repositories.EngagementRepository, feed repositories.FeedRepository) *EngagementHandler {
	return &EngagementHandler{Engagement: engagement, Feed: feed}
}

type commentRequest struct {
	Content string `json:"content"`
}

// Like toggles the caller's like on a video.
func (h *EngagementHandler) Like(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(r, "videoId")
	if !ok {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}

	result, err := h.Engagement.ToggleLike(r.Context(), auth.PrincipalFrom(r.Context()).UserID(), videoID)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	action := "unlike"
	if result.Liked {
		action = "like"
	}
	monitoring.LikesToggled.WithLabelValues(action).Inc()
	writeJSON(w, http.StatusOK, result)
}

// Comment appends a comment from a JSON body {"content": "..."}.
func (h *EngagementHandler) Comment(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(r, "videoId")
	if !ok {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	comment, err := h.Engagement.AddComment(r.Context(), auth.PrincipalFrom(r.Context()).UserID(), videoID, req.Content)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	monitoring.CommentsPosted.Inc()
	logrus.WithFields(logrus.Fields{"video_id": videoID, "comment_id": comment.ID}).Debug("Comment posted")
	writeJSON(w, http.StatusCreated, dto.NewCommentDTO(*comment))
}

// Comments lists the newest comments of a video.
func (h *EngagementHandler) Comments(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(r, "videoId")
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"comments": []dto.CommentDTO{}})
		return
	}

	comments, err := h.Feed.ListComments(r.Context(), videoID, repositories.DefaultCommentLimit)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	if comments == nil {
		comments = []dto.CommentDTO{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// View counts one view. Anonymous callers are allowed.
func (h *EngagementHandler) View(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(r, "videoId")
	if !ok {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}

	views, err := h.Engagement.RecordView(r.Context(), videoID)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	monitoring.ViewsRecorded.Inc()
	writeJSON(w, http.StatusOK, dto.ViewResult{ViewsCount: views})
}
