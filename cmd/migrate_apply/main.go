package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"processcraft/internal/db"
	"processcraft/internal/logger"

	"github.com/joho/godotenv"
)

// Lists the schema migrations under internal/migrations; with -apply, runs
// each one against DATABASE_URL inside its own transaction.
func main() {
	apply := flag.Bool("apply", false, "apply migrations instead of listing them")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	if !*apply {
		names, err := db.ListMigrations(*dir)
		if err != nil {
			logger.Fatal("list migrations failed", "error", err)
		}
		for _, name := range names {
			logger.Info("pending migration", "file", name)
		}
		logger.Info("dry run only, pass -apply to run them")
		return
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	if err := db.ApplyMigrations(context.Background(), pool, *dir); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}
	logger.Info("migrations applied", "dir", *dir)
}
