package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/casefall/casefall/internal/bootstrap"
	"github.com/casefall/casefall/internal/config"
	"github.com/casefall/casefall/internal/database"
	"github.com/casefall/casefall/internal/database/postgres"
)

// setup provisions the database for a fresh checkout: it creates the
// database if it does not exist, applies schema migrations, and seeds the
// case catalog from configs/catalog.json.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	if err := ensureDatabase(ctx, cfg); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBName, err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := bootstrap.SyncCatalog(ctx, cfg, postgres.NewCatalogRepository(pool)); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Println("Setup complete.")
}

// ensureDatabase connects to the default postgres database and creates the
// target database if it is missing.
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	adminConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	conn, err := pgx.Connect(ctx, adminConnString)
	if err != nil {
		return fmt.Errorf("connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database existence: %w", err)
	}

	if exists {
		log.Printf("Database %s already exists.", cfg.DBName)
		return nil
	}

	log.Printf("Creating database %s...", cfg.DBName)
	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", cfg.DBName)); err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	return nil
}
