package postgres

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/casefall/casefall/internal/database"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/testing/pgtest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		testDBConnString, terminate = pgtest.ConnString(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

// setupTestPool connects to the integration database, applies migrations and
// truncates all tables. Skips the test when no database is available.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, testDBConnString, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))

	_, err = pool.Exec(ctx,
		`TRUNCATE ledger_entries, inventory_items, purchased_cases, case_skins, cases, skins, users`)
	require.NoError(t, err)

	return pool
}

// createTestUser inserts a user with the given balance
func createTestUser(t *testing.T, pool *pgxpool.Pool, username string, balance int64) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: "x",
		Balance:      balance,
	}
	require.NoError(t, NewUserRepository(pool).CreateUser(context.Background(), user))
	return user
}

// createTestCase inserts a case with a single-skin drop table
func createTestCase(t *testing.T, pool *pgxpool.Pool, name string, price int64) (*domain.Case, *domain.Skin) {
	t.Helper()
	ctx := context.Background()
	catalog := NewCatalogRepository(pool)

	skin := &domain.Skin{
		Name:       name + " Skin",
		WeaponType: "AK-47",
		Rarity:     domain.RarityMilSpec,
		MinValue:   100,
		MaxValue:   1000,
	}
	require.NoError(t, catalog.UpsertSkin(ctx, skin))

	c := &domain.Case{
		Name:     name,
		Price:    price,
		IsActive: true,
	}
	require.NoError(t, catalog.UpsertCase(ctx, c))
	require.NoError(t, catalog.ReplaceCaseSlots(ctx, c.ID, []domain.CaseSlot{
		{CaseID: c.ID, SkinID: skin.ID, DropWeight: 1},
	}))

	return c, skin
}
