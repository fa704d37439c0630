package router

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/feed"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/follow"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/post"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

// Services groups everything the routes call into.
type Services struct {
	DB      *sqlx.DB
	Users   *user.UserService
	Auth    *auth.AuthService
	Follows *follow.FollowService
	Posts   *post.PostService
	Feed    *feed.FeedService
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(cfg Config, svc Services, logger *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()
	prod := cfg.Production

	mux.HandleFunc("GET /health", healthHandler(svc.DB))

	authH := auth.NewHandler(svc.Auth, logger, prod)
	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.HandleFunc("POST /api/auth/refresh", authH.Refresh)

	bearer := auth.RequireBearer(svc.Auth, logger, prod)

	followH := follow.NewHandler(svc.Follows, logger, prod)
	mux.Handle("POST /api/follow/{userid}", bearer(http.HandlerFunc(followH.Follow)))
	mux.Handle("DELETE /api/follow/{userid}", bearer(http.HandlerFunc(followH.Unfollow)))
	mux.HandleFunc("GET /api/users/{userid}/follows", followH.Stats)

	postH := post.NewHandler(svc.Posts, logger, prod)
	mux.Handle("POST /api/posts", bearer(http.HandlerFunc(postH.Create)))
	mux.HandleFunc("GET /api/posts/{id}", postH.Get)
	mux.HandleFunc("GET /api/users/{userid}/posts", postH.ListByUser)

	feedH := feed.NewHandler(svc.Feed, logger, prod)
	mux.Handle("GET /api/feed", bearer(http.HandlerFunc(feedH.Get)))

	userH := user.NewHandler(svc.Users, logger, prod)
	mux.HandleFunc("GET /api/users/search", userH.Search)

	var h http.Handler = mux
	h = DeadlineMiddleware(cfg.RequestDeadline)(h)
	h = SecurityHeadersMiddleware()(h)
	h = CORSMiddleware(cfg.CORSOrigins)(h)
	h = LoggingMiddleware(logger)(h)
	h = RequestIDMiddleware()(h)
	return h
}

func healthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			utilities.WriteJSON(w, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": "Database connection failed",
			})
			return
		}
		utilities.WriteJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"database": time.Now().UTC(),
		})
	}
}
