package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefall/casefall/internal/domain"
)

// CatalogRepository implements repository.Catalog backed by PostgreSQL.
// Used at seed time only, so everything is plain upserts.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// UpsertSkin inserts or updates a skin by name, writing the row ID back
func (r *CatalogRepository) UpsertSkin(ctx context.Context, skin *domain.Skin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO skins (name, weapon_type, rarity, min_value, max_value, image_url, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (name) DO UPDATE SET
		   weapon_type = EXCLUDED.weapon_type,
		   rarity = EXCLUDED.rarity,
		   min_value = EXCLUDED.min_value,
		   max_value = EXCLUDED.max_value,
		   image_url = EXCLUDED.image_url,
		   description = EXCLUDED.description
		 RETURNING id`,
		skin.Name, skin.WeaponType, skin.Rarity, skin.MinValue, skin.MaxValue,
		skin.ImageURL, skin.Description,
	).Scan(&skin.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert skin %q: %w", skin.Name, err)
	}
	return nil
}

// UpsertCase inserts or updates a case by name, writing the row ID back
func (r *CatalogRepository) UpsertCase(ctx context.Context, c *domain.Case) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO cases (name, description, price, image_url, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
		   description = EXCLUDED.description,
		   price = EXCLUDED.price,
		   image_url = EXCLUDED.image_url,
		   is_active = EXCLUDED.is_active
		 RETURNING id, created_at`,
		c.Name, c.Description, c.Price, c.ImageURL, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert case %q: %w", c.Name, err)
	}
	return nil
}

// ReplaceCaseSlots swaps a case's drop table for the given slots atomically
func (r *CatalogRepository) ReplaceCaseSlots(ctx context.Context, caseID uuid.UUID, slots []domain.CaseSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM case_skins WHERE case_id = $1`, caseID); err != nil {
		return fmt.Errorf("failed to clear case slots: %w", err)
	}

	for _, slot := range slots {
		_, err := tx.Exec(ctx,
			`INSERT INTO case_skins (case_id, skin_id, drop_weight) VALUES ($1, $2, $3)`,
			caseID, slot.SkinID, slot.DropWeight)
		if err != nil {
			return fmt.Errorf("failed to insert case slot: %w", err)
		}
	}

	return tx.Commit(ctx)
}
