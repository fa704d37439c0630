// Command migrate applies or inspects the schema migrations.
//
//	migrate up      apply pending migrations
//	migrate down    roll back the latest migration
//	migrate status  list migrations and whether they are applied
//	migrate reset   roll back everything, then apply again (drops all data)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

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

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	p, err := database.NewMigrator(db)
	if err != nil {
		sugar.Fatalf("migrator: %v", err)
	}
	ctx := context.Background()

	switch cmd {
	case "up":
		res, err := p.Up(ctx)
		if err != nil {
			sugar.Fatalf("migrate up: %v", err)
		}
		for _, r := range res {
			sugar.Infow("applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
		}
		sugar.Infow("up to date", "applied", len(res))
	case "down":
		r, err := p.Down(ctx)
		if err != nil {
			sugar.Fatalf("migrate down: %v", err)
		}
		sugar.Infow("rolled back", "version", r.Source.Version, "path", r.Source.Path)
	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			sugar.Fatalf("migrate status: %v", err)
		}
		for _, s := range statuses {
			sugar.Infow("migration", "version", s.Source.Version, "path", s.Source.Path, "state", s.State, "applied_at", s.AppliedAt)
		}
	case "reset":
		if _, err := p.DownTo(ctx, 0); err != nil {
			sugar.Fatalf("migrate reset down: %v", err)
		}
		res, err := p.Up(ctx)
		if err != nil {
			sugar.Fatalf("migrate reset up: %v", err)
		}
		sugar.Infow("schema recreated", "applied", len(res))
	default:
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|status|reset]\n")
		os.Exit(2)
	}
}
