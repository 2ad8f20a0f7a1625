package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"reels/auth"
	"reels/dto"
	"reels/models"
	"reels/monitoring"
	"reels/repositories"
)

// UserHandler serves registration, sessions, profiles and the follow graph.
type UserHandler struct {
	Users   repositories.UserRepository
	Follows repositories.FollowRepository
	Feed    repositories.FeedRepository
	Auth    *auth.Authenticator
}

func NewUserHandler(users repositories.UserRepository, follows repositories.FollowRepository, feed repositories.FeedRepository, authenticator *auth.Authenticator) *UserHandler {
	return &UserHandler{Users: users, Follows: follows, Feed: feed, Auth: authenticator}
}

// Register creates an account from form fields and redirects to /login.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	if fullName == "" {
		fullName = strings.TrimSpace(r.FormValue("fullName"))
	}
	password := r.FormValue("password")

	switch {
	case username == "":
		writeError(w, http.StatusBadRequest, "You have to enter a username")
		return
	case email == "" || !strings.Contains(email, "@"):
		writeError(w, http.StatusBadRequest, "You have to enter a valid email address")
		return
	case password == "":
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}
	if fullName == "" {
		fullName = username
	}

	hash, err := h.Auth.Hasher.Hash(password)
	if err != nil {
		logrus.WithError(err).Error("Error hashing password")
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}
	if err := h.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			writeError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		writeRepoError(w, r, err)
		return
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("username", username).Info("User registered")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Login checks credentials, issues the session cookie and redirects.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		monitoring.LoginFailure.WithLabelValues("missing_fields").Inc()
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.Auth.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, auth.ErrInactiveAccount):
		monitoring.LoginFailure.WithLabelValues("deactivated").Inc()
		writeError(w, http.StatusUnauthorized, "Your account has been deactivated")
		return
	case err != nil:
		monitoring.LoginFailure.WithLabelValues("invalid_credentials").Inc()
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := h.Users.TouchLastLogin(r.Context(), user.ID); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).Warn("Failed to record last login")
	}
	if err := h.Auth.Sessions.Issue(w, r, user.ID); err != nil {
		logrus.WithError(err).Error("Failed to issue session")
		writeError(w, http.StatusInternalServerError, "Could not start session")
		return
	}

	monitoring.LoginSuccess.Inc()
	http.Redirect(w, r, safeRedirect(r.URL.Query().Get("next")), http.StatusFound)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Sessions.Clear(w, r); err != nil {
		logrus.WithError(err).Warn("Failed to clear session")
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Profile returns a user with their latest videos.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.Users.FindByUsername(r.Context(), username)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	page, err := h.Feed.ListByUser(r.Context(), username, 1, ProfileVideoLimit)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	following := false
	if viewer := auth.PrincipalFrom(r.Context()); viewer.IsAuthenticated() && viewer.UserID() != user.ID {
		following, err = h.Follows.IsFollowing(r.Context(), viewer.UserID(), user.ID)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, dto.NewProfile(*user, page.Videos, following))
}

// UserVideos is the paginated feed of one user.
func (h *UserHandler) UserVideos(w http.ResponseWriter, r *http.Request) {
	page, err := h.Feed.ListByUser(r.Context(), mux.Vars(r)["username"], pageParam(r), FeedPageSize)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, true)
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, false)
}

func (h *UserHandler) changeFollow(w http.ResponseWriter, r *http.Request, follow bool) {
	target, err := h.Users.FindByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	viewer := auth.PrincipalFrom(r.Context())
	var result dto.FollowResult
	action := "follow"
	if follow {
		result, err = h.Follows.Follow(r.Context(), viewer.UserID(), target.ID)
	} else {
		action = "unfollow"
		result, err = h.Follows.Unfollow(r.Context(), viewer.UserID(), target.ID)
	}
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	monitoring.FollowsChanged.WithLabelValues(action).Inc()
	writeJSON(w, http.StatusOK, result)
}

// Deactivate soft-deactivates an account. Admin only.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.FindByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	if err := h.Users.SetActive(r.Context(), user.ID, false); err != nil {
		writeRepoError(w, r, err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"username": user.Username,
		"by":       auth.PrincipalFrom(r.Context()).Username(),
	}).Info("User deactivated")
	w.WriteHeader(http.StatusNoContent)
}
