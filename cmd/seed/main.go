package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/migration"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/seed"
)

// Seeds the demo fact-checkers and sample claims without starting the
// HTTP server.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		databaseURL = os.Args[1]
	}
	if databaseURL == "" {
		log.Fatal("Usage: seed <database_url> (or set DATABASE_URL)")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := seed.Run(ctx, db, internal.NewDefaultLogger()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
