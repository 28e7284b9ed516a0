package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vishwajithsandaru/govhack-2025-factshield/adapters/llm"
	"github.com/vishwajithsandaru/govhack-2025-factshield/adapters/postgres"
	"github.com/vishwajithsandaru/govhack-2025-factshield/adapters/weaviate"
	"github.com/vishwajithsandaru/govhack-2025-factshield/app"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/api"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/auth"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/config"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/migration"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/seed"
)

// initDatabase connects to PostgreSQL and brings the schema up to date
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	if appConfig.Seed.DemoData {
		if err := seed.Run(context.Background(), db, logger); err != nil {
			log.Fatal("Failed to seed demo data: ", err)
		}
	}

	retriever, err := weaviate.NewRetriever(weaviate.Config{
		Host:   appConfig.Retriever.Host,
		Scheme: appConfig.Retriever.Scheme,
		Class:  appConfig.Retriever.Class,
	})
	if err != nil {
		log.Fatal("Failed to create evidence retriever: ", err)
	}

	llmClient, err := llm.NewOpenAIClient(llm.Config{
		APIKey:      appConfig.AI.OpenAIKey,
		Model:       appConfig.AI.Model,
		BaseURL:     appConfig.AI.BaseURL,
		Temperature: appConfig.AI.Temperature,
		MaxTokens:   appConfig.AI.MaxTokens,
		Timeout:     appConfig.AI.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create LLM client: ", err)
	}

	oracle := app.NewOracle(retriever, llmClient, appConfig.Retriever.TopK)
	claimService := app.NewClaimService(
		postgres.NewClaimRepository(db),
		postgres.NewVoteRepository(db),
		oracle,
	)

	tokens := auth.NewTokenManager(appConfig.Auth.JWTSecret, appConfig.Auth.TokenTTL)
	authService := app.NewAuthService(postgres.NewUserRepository(db), tokens)

	server := api.NewServer(&appConfig.Server, claimService, authService, logger)
	if err := server.Run(); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
