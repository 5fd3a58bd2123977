// Package pgtest starts a throwaway Postgres container for integration
// tests. Setting TEST_DATABASE_URL bypasses the container and points the
// tests at an existing database instead, for CI runners without Docker.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const containerImage = "postgres:15-alpine"

// ConnString returns a connection string for integration tests and a
// terminate function. An empty string means no database is available and
// callers should skip. Intended for TestMain, before any test runs.
func ConnString(ctx context.Context) (connStr string, terminate func()) {
	terminate = func() {}

	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		return url, terminate
	}

	// testcontainers panics on some misconfigured Docker hosts
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic starting postgres container: %v\n", r)
			connStr = ""
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		containerImage,
		postgres.WithDatabase("casefall_test"),
		postgres.WithUsername("casefall"),
		postgres.WithPassword("casefall"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", terminate
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", terminate
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate postgres container: %v\n", err)
		}
	}
}
