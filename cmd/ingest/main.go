package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vishwajithsandaru/govhack-2025-factshield/adapters/weaviate"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Loads the export statistics CSV into the evidence store the oracle
// retrieves from. Safe to re-run: object IDs are derived from the row
// key, so an unchanged CSV upserts in place.
func main() {
	_ = godotenv.Load()

	csvPath := flag.String("csv", "data/sopi-2004-2024.csv", "path to the export statistics CSV")
	host := flag.String("host", envOr("WEAVIATE_HOST", "localhost:8080"), "weaviate host")
	scheme := flag.String("scheme", envOr("WEAVIATE_SCHEME", "http"), "weaviate scheme")
	class := flag.String("class", envOr("WEAVIATE_CLASS", "DairyFact"), "weaviate class name")
	flag.Parse()

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	facts, err := weaviate.ParseFactsCSV(file)
	if err != nil {
		log.Fatalf("Failed to parse CSV: %v", err)
	}
	log.Printf("Parsed %d facts from %s", len(facts), *csvPath)

	ingester, err := weaviate.NewIngester(weaviate.Config{
		Host:   *host,
		Scheme: *scheme,
		Class:  *class,
	})
	if err != nil {
		log.Fatalf("Failed to create ingester: %v", err)
	}

	ctx := context.Background()
	if err := ingester.EnsureClass(ctx); err != nil {
		log.Fatalf("Failed to ensure class: %v", err)
	}

	stored, err := ingester.Import(ctx, facts)
	if err != nil {
		log.Fatalf("Import failed after %d objects: %v", stored, err)
	}
	log.Printf("Class %q now holds %d imported facts", *class, stored)
}
