package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reels/auth"
	"reels/handlers"
	"reels/logger"
	"reels/monitoring"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Users      *handlers.UserHandler
	Videos     *handlers.VideoHandler
	Engagement *handlers.EngagementHandler
	System     *handlers.SystemHandler
	Auth       *auth.Authenticator
}

// SetupRoutes initializes all the application routes
func SetupRoutes(h Handlers) http.Handler {
	router := mux.NewRouter()
	router.Use(monitoring.InstrumentHandler, logger.AccessLog, h.Auth.Middleware)

	// Session routes
	router.HandleFunc("/login", h.Users.Login).Methods("POST")
	router.HandleFunc("/register", h.Users.Register).Methods("POST")
	router.HandleFunc("/logout", auth.RequireAuth(h.Users.Logout)).Methods("POST")

	// Media
	router.HandleFunc("/upload", auth.RequireAuth(h.Videos.Upload)).Methods("POST")
	router.HandleFunc("/video/{filename}", h.Videos.ServeVideo).Methods("GET", "HEAD")
	router.HandleFunc("/api/videos", h.Videos.ListFeed).Methods("GET")
	router.HandleFunc("/api/video/{videoId:[0-9]+}", auth.RequireAuth(h.Videos.DeleteVideo)).Methods("DELETE")

	// Engagement
	router.HandleFunc("/api/like/{videoId:[0-9]+}", auth.RequireAuth(h.Engagement.Like)).Methods("POST")
	router.HandleFunc("/api/comment/{videoId:[0-9]+}", auth.RequireAuth(h.Engagement.Comment)).Methods("POST")
	router.HandleFunc("/api/comments/{videoId:[0-9]+}", h.Engagement.Comments).Methods("GET")
	router.HandleFunc("/api/view/{videoId:[0-9]+}", h.Engagement.View).Methods("POST")

	// Users and the follow graph
	router.HandleFunc("/profile/{username}", auth.RequireAuth(h.Users.Profile)).Methods("GET")
	router.HandleFunc("/api/users/{username}/videos", h.Users.UserVideos).Methods("GET")
	router.HandleFunc("/api/users/{username}/deactivate", auth.RequireAdmin(h.Users.Deactivate)).Methods("POST")
	router.HandleFunc("/api/follow/{username}", auth.RequireAuth(h.Users.Follow)).Methods("POST")
	router.HandleFunc("/api/follow/{username}", auth.RequireAuth(h.Users.Unfollow)).Methods("DELETE")

	// System
	router.HandleFunc("/health", h.System.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}
