package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefall/casefall/internal/database/postgres"
	"github.com/casefall/casefall/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	User        repository.User
	CaseOpening repository.CaseOpening
	Economy     repository.Economy
	Catalog     repository.Catalog
}

// InitializeRepositories creates all repository implementations against the
// shared connection pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        postgres.NewUserRepository(dbPool),
		CaseOpening: postgres.NewCaseOpeningRepository(dbPool),
		Economy:     postgres.NewEconomyRepository(dbPool),
		Catalog:     postgres.NewCatalogRepository(dbPool),
	}
}
