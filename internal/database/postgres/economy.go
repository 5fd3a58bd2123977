package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/repository"
)

// EconomyRepository implements repository.Economy backed by PostgreSQL
type EconomyRepository struct {
	pool *pgxpool.Pool
}

// NewEconomyRepository creates a new economy repository
func NewEconomyRepository(pool *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{pool: pool}
}

const inventoryItemColumns = `id, user_id, skin_id, wear_float, value, acquired_from, is_sold, sold_at, created_at`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(&item.ID, &item.UserID, &item.SkinID, &item.Float, &item.Value,
		&item.AcquiredFrom, &item.IsSold, &item.SoldAt, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetInventoryItem retrieves an inventory item by ID with its skin attached
func (r *EconomyRepository) GetInventoryItem(ctx context.Context, itemID uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var skin domain.Skin
	err := r.pool.QueryRow(ctx,
		`SELECT i.id, i.user_id, i.skin_id, i.wear_float, i.value, i.acquired_from, i.is_sold, i.sold_at, i.created_at,
		        s.id, s.name, s.weapon_type, s.rarity, s.min_value, s.max_value, s.image_url, s.description
		 FROM inventory_items i
		 JOIN skins s ON s.id = i.skin_id
		 WHERE i.id = $1`, itemID,
	).Scan(&item.ID, &item.UserID, &item.SkinID, &item.Float, &item.Value,
		&item.AcquiredFrom, &item.IsSold, &item.SoldAt, &item.CreatedAt,
		&skin.ID, &skin.Name, &skin.WeaponType, &skin.Rarity,
		&skin.MinValue, &skin.MaxValue, &skin.ImageURL, &skin.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	item.Skin = &skin
	return &item, nil
}

// ListInventory returns a user's inventory items with skins attached, newest first
func (r *EconomyRepository) ListInventory(ctx context.Context, userID uuid.UUID, includeSold bool) ([]domain.InventoryItem, error) {
	query := `SELECT i.id, i.user_id, i.skin_id, i.wear_float, i.value, i.acquired_from, i.is_sold, i.sold_at, i.created_at,
	                 s.id, s.name, s.weapon_type, s.rarity, s.min_value, s.max_value, s.image_url, s.description
	          FROM inventory_items i
	          JOIN skins s ON s.id = i.skin_id
	          WHERE i.user_id = $1`
	if !includeSold {
		query += ` AND NOT i.is_sold`
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		var skin domain.Skin
		err := rows.Scan(&item.ID, &item.UserID, &item.SkinID, &item.Float, &item.Value,
			&item.AcquiredFrom, &item.IsSold, &item.SoldAt, &item.CreatedAt,
			&skin.ID, &skin.Name, &skin.WeaponType, &skin.Rarity,
			&skin.MinValue, &skin.MaxValue, &skin.ImageURL, &skin.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		item.Skin = &skin
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListLedgerEntries returns a user's most recent ledger entries
func (r *EconomyRepository) ListLedgerEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, type, amount, balance_before, balance_after, description, reference_id, created_at
		 FROM ledger_entries
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.BalanceBefore, &e.BalanceAfter,
			&e.Description, &e.ReferenceID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BeginTx starts an economy transaction
func (r *EconomyRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &economyTx{tx: tx}, nil
}

type economyTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *economyTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *economyTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetInventoryItemForUpdate retrieves an inventory item with a SELECT FOR UPDATE lock
func (t *economyTx) GetInventoryItemForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.InventoryItem, error) {
	item, err := scanInventoryItem(t.tx.QueryRow(ctx,
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item with lock: %w", err)
	}
	return item, nil
}

// MarkItemSold flips the sold flag. Refuses to flip it twice so a lost race
// surfaces as ErrAlreadySold.
func (t *economyTx) MarkItemSold(ctx context.Context, itemID uuid.UUID, soldAt time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE inventory_items SET is_sold = TRUE, sold_at = $2
		 WHERE id = $1 AND NOT is_sold`, itemID, soldAt)
	if err != nil {
		return fmt.Errorf("failed to mark item sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadySold
	}
	return nil
}

// GetUserForUpdate retrieves a user row with a SELECT FOR UPDATE lock
func (t *economyTx) GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return getUserForUpdate(ctx, t.tx, userID)
}

// UpdateUserBalance sets the user's balance
func (t *economyTx) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error {
	return updateUserBalance(ctx, t.tx, userID, balance)
}

// InsertLedgerEntry appends a ledger entry
func (t *economyTx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	return insertLedgerEntry(ctx, t.tx, entry)
}
