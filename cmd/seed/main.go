package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize the schema and seed the inventory catalog",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the items and restock_requests tables",
				Flags: []cli.Flag{newDBURLFlag()},
				Action: func(c *cli.Context) error {
					db, err := openDB(c)
					if err != nil {
						return err
					}
					defer db.Close()

					if _, err := db.ExecContext(c.Context, postgres.Schema); err != nil {
						return fmt.Errorf("failed to apply schema: %w", err)
					}
					log.Println("schema applied")
					return nil
				},
			},
			{
				Name:  "items",
				Usage: "Load catalog items from a CSV file (name,category,unit,current_stock,daily_usage)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the items CSV",
						Required: true,
					},
				},
				Action: seedItems,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedItems(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < 5 {
		return fmt.Errorf("expected columns name,category,unit,current_stock,daily_usage, got %v", header)
	}

	query := `
		INSERT INTO items (name, category, unit, current_stock, daily_usage)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			current_stock = EXCLUDED.current_stock,
			daily_usage = EXCLUDED.daily_usage,
			updated_at = NOW()
	`

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read csv record: %w", err)
		}

		stock, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || stock < 0 {
			return fmt.Errorf("invalid current_stock %q for item %q", record[3], record[0])
		}
		usage, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil || usage < 0 {
			return fmt.Errorf("invalid daily_usage %q for item %q", record[4], record[0])
		}

		if _, err := db.ExecContext(context.Background(), query,
			strings.TrimSpace(record[0]),
			strings.TrimSpace(record[1]),
			strings.TrimSpace(record[2]),
			stock,
			usage,
		); err != nil {
			return fmt.Errorf("failed to upsert item %q: %w", record[0], err)
		}
		count++
	}

	log.Printf("seeded %d items", count)
	return nil
}
