package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	status := flag.Bool("status", false, "Print the state of every migration")
	flag.Parse()

	ctx := context.Background()
	log := logging.New(false)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error(ctx, "load config", "error", err)
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = database.PostgresDSN(cfg)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *status:
		err = database.MigrationStatus(ctx, db)
	case *rollback:
		err = database.MigrateDown(ctx, db)
	default:
		err = database.MigrateUp(ctx, db)
	}
	if err != nil {
		log.Error(ctx, "migration failed", "error", err)
		db.Close()
		os.Exit(1)
	}
	if !*status {
		fmt.Println("Migrations complete.")
	}
}
