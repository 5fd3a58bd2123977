package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/casefall/casefall/internal/catalog"
	"github.com/casefall/casefall/internal/config"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/repository"
	"github.com/casefall/casefall/internal/validation"
)

// SyncCatalog loads the case catalog JSON, validates it against its schema,
// and upserts skins, cases, and drop tables into the database. Safe to run
// on every startup.
func SyncCatalog(ctx context.Context, cfg *config.Config, repo repository.Catalog) error {
	logger.Info(LogMsgSyncingCatalog, "path", cfg.CatalogPath)

	schemaPath := filepath.Join(cfg.SchemaDir, "catalog.schema.json")
	file, err := catalog.Load(cfg.CatalogPath, schemaPath, validation.NewSchemaValidator())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := catalog.NewSeeder(repo).Seed(ctx, file); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	logger.Info(LogMsgCatalogSynced,
		"skins", len(file.Skins),
		"cases", len(file.Cases))

	return nil
}
