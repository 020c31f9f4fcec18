// One-shot auto-restock sweep from the command line, for cron jobs and
// operational spot checks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/config"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/policy"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository/postgres"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/sweep"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dbURL := flag.String("db-url", os.Getenv("DATABASE_URL"), "Database connection string")
	dryRun := flag.Bool("dry-run", false, "Evaluate without writing restock requests")
	minTier := flag.String("min-tier", "High", "Least urgent tier that triggers a request (Critical, High, Normal)")
	targetDays := flag.Int("target-days", 7, "Days of cover the suggested quantity aims for")
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("Database URL is required (use -db-url flag or DATABASE_URL)")
	}

	tier, ok := domain.ParseTier(*minTier)
	if !ok {
		log.Fatalf("Unknown tier: %s", *minTier)
	}

	db, err := postgres.NewDB(&config.DatabaseConfig{URL: *dbURL})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	engine := sweep.New(
		postgres.NewInventoryRepository(db),
		postgres.NewRestockRepository(db),
		policy.New(policy.Config{MinimumTier: tier, TargetDays: *targetDays}),
	)

	result, err := engine.Run(context.Background(), !*dryRun)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
