// Command auth-cleanup deletes refresh tokens that have expired.
// Run it periodically from cron or a scheduler.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

func main() {
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("auth config: %v", err)
	}
	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ids, err := utilities.NewIDGenerator(utilities.NodeFromEnv())
	if err != nil {
		sugar.Fatalf("id generator: %v", err)
	}
	users := user.NewUserService(db, nil, user.BcryptHasher{Cost: authCfg.BcryptCost})
	svc := auth.NewAuthService(db, authCfg, users, ids, sugar)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := svc.PurgeExpired(ctx)
	if err != nil {
		sugar.Fatalf("purge expired refresh tokens: %v", err)
	}
	sugar.Infow("expired refresh tokens deleted", "count", n)
}
