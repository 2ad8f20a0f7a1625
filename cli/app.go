package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"reels/auth"
	"reels/cache"
	"reels/config"
	"reels/database"
	"reels/handlers"
	"reels/media"
	"reels/repositories"
	"reels/routes"
)

// App is the wired service: one store handle shared by every repository.
type App struct {
	DB         *database.DB
	Users      repositories.UserRepository
	Follows    repositories.FollowRepository
	Videos     repositories.VideoRepository
	Engagement repositories.EngagementRepository
	Feed       repositories.FeedRepository

	redis *redis.Client
}

// OpenApp connects to the database and builds the repositories.
func OpenApp(cfg *config.Config) (*App, error) {
	db, err := database.New(database.Options{
		Driver:     cfg.DatabaseDriver,
		DSN:        cfg.DatabaseURL,
		ReplicaDSN: cfg.DatabaseReplicaURL,
		LogQueries: cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, err
	}
	return newApp(db), nil
}

func newApp(db *database.DB) *App {
	return &App{
		DB:         db,
		Users:      repositories.NewUserRepository(db.DB),
		Follows:    repositories.NewFollowRepository(db.DB),
		Videos:     repositories.NewVideoRepository(db.DB),
		Engagement: repositories.NewEngagementRepository(db.DB),
		Feed:       repositories.NewFeedRepository(db.DB),
	}
}

// Handler builds the HTTP surface on top of the repositories.
func (a *App) Handler(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	store, err := openMediaStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	feedCache, err := a.openFeedCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authenticator := auth.NewAuthenticator(a.Users, auth.NewHasher(),
		auth.NewSessions([]byte(cfg.SessionSecret), cfg.SecureCookies), cfg.AdminUsernames)

	return routes.SetupRoutes(routes.Handlers{
		Users:      handlers.NewUserHandler(a.Users, a.Follows, a.Feed, authenticator),
		Videos:     handlers.NewVideoHandler(a.Videos, a.Feed, store, feedCache, cfg.MaxUploadMB),
		Engagement: handlers.NewEngagementHandler(a.Engagement, a.Feed),
		System:     handlers.NewSystemHandler(a.DB),
		Auth:       authenticator,
	}), nil
}

func openMediaStore(ctx context.Context, cfg *config.Config) (media.Store, error) {
	switch cfg.MediaBackend {
	case "minio":
		logrus.WithFields(logrus.Fields{
			"endpoint": cfg.MinioEndpoint,
			"bucket":   cfg.MinioBucket,
		}).Info("Using MinIO media store")
		return media.NewMinioStore(ctx, media.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		logrus.WithField("dir", cfg.MediaDir).Info("Using local media store")
		return media.NewLocalStore(cfg.MediaDir)
	}
}

// openFeedCache returns a Redis-backed cache only when both REDIS_URL and a
// positive FEED_CACHE_TTL are set.
func (a *App) openFeedCache(ctx context.Context, cfg *config.Config) (cache.FeedCache, error) {
	if cfg.RedisURL == "" || cfg.FeedCacheTTL <= 0 {
		return cache.Nop{}, nil
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("feed cache: %w", err)
	}
	a.redis = rdb

	fc := cache.NewRedisFeedCache(rdb, cfg.FeedCacheTTL)
	fc.OnError = func(op string, err error) {
		logrus.WithFields(logrus.Fields{"op": op, "error": err}).Warn("Feed cache error")
	}
	logrus.WithField("ttl", cfg.FeedCacheTTL).Info("Feed cache enabled")
	return fc, nil
}

// Close releases the database pool and the cache client.
func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close redis client")
		}
	}
	return a.DB.Close()
}
