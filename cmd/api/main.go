package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/feed"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/follow"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/post"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user/cache"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-social-go")

	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("auth config: %v", err)
	}
	if authCfg.BcryptCost < bcrypt.MinCost || authCfg.BcryptCost > bcrypt.MaxCost {
		sugar.Fatalf("BCRYPT_SALT_ROUNDS must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	dbCfg := database.ConfigFromEnv()
	db, err := database.Connect(dbCfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		sugar.Fatalf("db migrate: %v", err)
	}
	sugar.Infow("database ready", "driver", dbCfg.Driver, "migrations_applied", applied)

	ids, err := utilities.NewIDGenerator(utilities.NodeFromEnv())
	if err != nil {
		sugar.Fatalf("id generator: %v", err)
	}

	users := user.NewUserService(db, nil, user.BcryptHasher{Cost: authCfg.BcryptCost})
	if cacheCfg := cache.ConfigFromEnv(); cacheCfg.Addr != "" {
		rdb, err := cache.Connect(ctx, cacheCfg)
		if err != nil {
			sugar.Warnw("search cache disabled", "err", err)
		} else {
			defer rdb.Close()
			users.WithSearchCache(cache.NewSearchCache(rdb, cacheCfg.TTL), sugar)
			sugar.Infow("search cache enabled", "addr", cacheCfg.Addr, "ttl", cacheCfg.TTL)
		}
	}

	svc := router.Services{
		DB:      db,
		Users:   users,
		Auth:    auth.NewAuthService(db, authCfg, users, ids, sugar),
		Follows: follow.NewFollowService(db, users),
		Posts:   post.NewPostService(db, users),
		Feed:    feed.NewFeedService(db, users),
	}

	routerCfg := router.ConfigFromEnv()
	// database/sql has no acquire timeout; DB_ACQUIRE_TIMEOUT bounds the whole
	// request instead, so pool waits plus queries must finish within it.
	routerCfg.RequestDeadline = dbCfg.AcquireTimeout
	srv := &http.Server{
		Addr:              routerCfg.Addr,
		Handler:           router.RegisterRoutes(routerCfg, svc, sugar),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("http server listening", "addr", routerCfg.Addr, "production", routerCfg.Production)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
