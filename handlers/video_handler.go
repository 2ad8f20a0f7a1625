package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"reels/auth"
	"reels/cache"
	"reels/dto"
	"reels/media"
	"reels/models"
	"reels/monitoring"
	"reels/repositories"
)

// VideoHandler serves uploads, raw media and the public feed.
type VideoHandler struct {
	Videos    repositories.VideoRepository
	Feed      repositories.FeedRepository
	Media     media.Store
	Cache     cache.FeedCache
	MaxUpload int64
}

func NewVideoHandler(videos repositories.VideoRepository, feed repositories.FeedRepository, store media.Store, fc cache.FeedCache, maxUploadMB int64) *VideoHandler {
	if fc == nil {
		fc = cache.Nop{}
	}
	return &VideoHandler{Videos: videos, Feed: feed, Media: store, Cache: fc, MaxUpload: maxUploadMB << 20}
}

// Upload stores the multipart "video" file and records its metadata.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("video")
	if err != nil || header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No video file provided")
		return
	}
	defer file.Close()

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	ext, ok := media.ExtensionOf(header.Filename)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	id, err := h.Media.Save(r.Context(), file, ext)
	if err != nil {
		logrus.WithError(err).Error("Failed to store upload")
		writeError(w, http.StatusInternalServerError, "Could not store video")
		return
	}
	size, err := h.Media.SizeOf(r.Context(), id)
	if err != nil {
		logrus.WithFields(logrus.Fields{"media_id": id, "error": err}).Warn("Failed to stat upload")
		size = header.Size
	}

	owner := auth.PrincipalFrom(r.Context())
	video := &models.Video{
		UserID:      owner.UserID(),
		Title:       title,
		Description: strings.TrimSpace(r.FormValue("description")),
		Filename:    id,
		FileSize:    size,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Videos.Create(r.Context(), video); err != nil {
		if delErr := h.Media.Delete(context.WithoutCancel(r.Context()), id); delErr != nil {
			logrus.WithFields(logrus.Fields{"media_id": id, "error": delErr}).Error("Failed to remove orphaned media")
		}
		writeRepoError(w, r, err)
		return
	}
	video.User = models.User{ID: owner.UserID(), Username: owner.Username()}

	h.Cache.Invalidate(r.Context())
	monitoring.VideosUploaded.Inc()
	logrus.WithFields(logrus.Fields{
		"video_id": video.ID,
		"user":     owner.Username(),
		"size":     size,
	}).Info("Video uploaded")
	writeJSON(w, http.StatusCreated, dto.NewVideoSummary(*video))
}

// ServeVideo streams the raw bytes of an active video.
func (h *VideoHandler) ServeVideo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["filename"]
	if !media.ValidID(id) {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	video, err := h.Videos.FindByFilename(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	if !video.IsActive {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}

	rc, err := h.Media.Open(r.Context(), id)
	if errors.Is(err, media.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"media_id": id, "error": err}).Error("Failed to open media")
		writeError(w, http.StatusInternalServerError, "Could not read video")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", media.ContentType(id))
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, id, video.CreatedAt, rs)
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		logrus.WithFields(logrus.Fields{"media_id": id, "error": err}).Debug("Client went away during stream")
	}
}

// ListFeed is the public feed, newest first.
func (h *VideoHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	if fp, ok := h.Cache.Get(r.Context(), page); ok {
		monitoring.FeedCacheLookups.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, fp)
		return
	}
	monitoring.FeedCacheLookups.WithLabelValues("miss").Inc()

	fp, err := h.Feed.ListFeed(r.Context(), page, FeedPageSize)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	h.Cache.Set(r.Context(), page, fp)
	writeJSON(w, http.StatusOK, fp)
}

// DeleteVideo soft-deletes a video owned by the caller, or any video for admins.
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(r, "videoId")
	if !ok {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	p := auth.PrincipalFrom(r.Context())
	if err := h.Videos.SoftDelete(r.Context(), videoID, p.UserID(), p.CanAdminister()); err != nil {
		writeRepoError(w, r, err)
		return
	}
	h.Cache.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
