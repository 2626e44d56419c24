package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/auth"
	"github.com/5w1tchy/portfolio-api/internal/logging"
	"github.com/5w1tchy/portfolio-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/portfolio-api/internal/security/password"
	"github.com/5w1tchy/portfolio-api/internal/store/schema"
	"github.com/joho/godotenv"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command>

Commands:
  up           apply the schema (idempotent)
  down         drop every table
  seed-admin   create or update the admin from ADMIN_EMAIL / ADMIN_PASSWORD`)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../../.env")
	logging.Setup()

	if len(os.Args) < 2 {
		usage()
	}

	ctx := context.Background()
	db, err := sqlconnect.ConnectDB(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "up":
		if err := schema.Up(ctx, db); err != nil {
			logging.Fatal("schema up failed", "error", err)
		}
		slog.Info("schema applied")
	case "down":
		if err := schema.Down(ctx, db); err != nil {
			logging.Fatal("schema down failed", "error", err)
		}
		slog.Info("all tables dropped", "tables", schema.Tables)
	case "seed-admin":
		email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
		if email == "" {
			logging.Fatal("ADMIN_EMAIL is required")
		}
		pwd, err := password.Validate(os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			logging.Fatal("ADMIN_PASSWORD rejected", "error", err)
		}
		phc, err := password.NewHasher(password.ParamsFromEnv()).Hash(pwd)
		if err != nil {
			logging.Fatal("hash failed", "error", err)
		}
		admin, err := auth.NewSQLStore(db).Upsert(ctx, email, phc)
		if err != nil {
			logging.Fatal("seed admin failed", "error", err)
		}
		slog.Info("admin seeded", "id", admin.ID, "email", admin.Email)
	default:
		usage()
	}
}
