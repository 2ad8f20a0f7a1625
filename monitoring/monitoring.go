package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"reels/logger"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "login_success_total",
		Help: "Total successful login attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	RegisterSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "register_success_total",
		Help: "Total successful register attempts",
	})

	VideosUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "videos_uploaded_total",
		Help: "Total videos successfully uploaded",
	})

	LikesToggled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "likes_toggled_total",
		Help: "Total like toggles by resulting action",
	}, []string{"action"})

	CommentsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comments_posted_total",
		Help: "Total comments successfully posted",
	})

	ViewsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "views_recorded_total",
		Help: "Total video views recorded",
	})

	FollowsChanged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "follows_changed_total",
		Help: "Total follow graph changes by action",
	}, []string{"action"})

	FeedCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_cache_lookups_total",
		Help: "Feed page cache lookups by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LoginSuccess)
	prometheus.MustRegister(LoginFailure)
	prometheus.MustRegister(RegisterSuccess)
	prometheus.MustRegister(VideosUploaded)
	prometheus.MustRegister(LikesToggled)
	prometheus.MustRegister(CommentsPosted)
	prometheus.MustRegister(ViewsRecorded)
	prometheus.MustRegister(FollowsChanged)
	prometheus.MustRegister(FeedCacheLookups)
}

// InstrumentHandler records request durations. Routes are labeled by their
// mux path template so ids in the URL do not explode label cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := logger.NewStatusRecorder(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		status := strconv.Itoa(rw.Status)

		RequestDuration.WithLabelValues(r.Method, route, status).Observe(duration)
	})
}
