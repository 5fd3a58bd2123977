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

const caseColumns = `id, name, description, price, image_url, is_active, created_at`

const skinColumns = `id, name, weapon_type, rarity, min_value, max_value, image_url, description`

// CaseOpeningRepository implements repository.CaseOpening backed by PostgreSQL
type CaseOpeningRepository struct {
	pool *pgxpool.Pool
}

// NewCaseOpeningRepository creates a new case opening repository
func NewCaseOpeningRepository(pool *pgxpool.Pool) *CaseOpeningRepository {
	return &CaseOpeningRepository{pool: pool}
}

func scanCase(row pgx.Row) (*domain.Case, error) {
	var c domain.Case
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.ImageURL, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanSkin(row pgx.Row) (*domain.Skin, error) {
	var s domain.Skin
	err := row.Scan(&s.ID, &s.Name, &s.WeaponType, &s.Rarity, &s.MinValue, &s.MaxValue, &s.ImageURL, &s.Description)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveCases returns all cases currently offered for purchase
func (r *CaseOpeningRepository) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+caseColumns+` FROM cases WHERE is_active ORDER BY price, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, *c)
	}
	return cases, rows.Err()
}

// GetCaseByID retrieves a case by ID
func (r *CaseOpeningRepository) GetCaseByID(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	c, err := scanCase(r.pool.QueryRow(ctx,
		`SELECT `+caseColumns+` FROM cases WHERE id = $1`, caseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return c, nil
}

// GetCaseSlots returns the case's drop table rows with their skins attached.
// The ordering is stable so the compiled table's tie-breaking is reproducible.
func (r *CaseOpeningRepository) GetCaseSlots(ctx context.Context, caseID uuid.UUID) ([]domain.CaseSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cs.case_id, cs.skin_id, cs.drop_weight,
		        s.id, s.name, s.weapon_type, s.rarity, s.min_value, s.max_value, s.image_url, s.description
		 FROM case_skins cs
		 JOIN skins s ON s.id = cs.skin_id
		 WHERE cs.case_id = $1
		 ORDER BY s.rarity, s.name`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.CaseSlot
	for rows.Next() {
		var slot domain.CaseSlot
		var skin domain.Skin
		err := rows.Scan(&slot.CaseID, &slot.SkinID, &slot.DropWeight,
			&skin.ID, &skin.Name, &skin.WeaponType, &skin.Rarity,
			&skin.MinValue, &skin.MaxValue, &skin.ImageURL, &skin.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case slot: %w", err)
		}
		slot.Skin = &skin
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

const purchasedCaseColumns = `id, user_id, case_id, opened, opened_at, created_at`

func scanPurchasedCase(row pgx.Row) (*domain.PurchasedCase, error) {
	var p domain.PurchasedCase
	err := row.Scan(&p.ID, &p.UserID, &p.CaseID, &p.Opened, &p.OpenedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPurchasedCase retrieves a purchased case by ID
func (r *CaseOpeningRepository) GetPurchasedCase(ctx context.Context, purchaseID uuid.UUID) (*domain.PurchasedCase, error) {
	p, err := scanPurchasedCase(r.pool.QueryRow(ctx,
		`SELECT `+purchasedCaseColumns+` FROM purchased_cases WHERE id = $1`, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchased case: %w", err)
	}
	return p, nil
}

// ListPurchasedCases returns a user's purchased cases, newest first
func (r *CaseOpeningRepository) ListPurchasedCases(ctx context.Context, userID uuid.UUID, unopenedOnly bool) ([]domain.PurchasedCase, error) {
	query := `SELECT pc.id, pc.user_id, pc.case_id, pc.opened, pc.opened_at, pc.created_at,
	                 c.id, c.name, c.description, c.price, c.image_url, c.is_active, c.created_at
	          FROM purchased_cases pc
	          JOIN cases c ON c.id = pc.case_id
	          WHERE pc.user_id = $1`
	if unopenedOnly {
		query += ` AND NOT pc.opened`
	}
	query += ` ORDER BY pc.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchased cases: %w", err)
	}
	defer rows.Close()

	var purchases []domain.PurchasedCase
	for rows.Next() {
		var p domain.PurchasedCase
		var c domain.Case
		err := rows.Scan(&p.ID, &p.UserID, &p.CaseID, &p.Opened, &p.OpenedAt, &p.CreatedAt,
			&c.ID, &c.Name, &c.Description, &c.Price, &c.ImageURL, &c.IsActive, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchased case: %w", err)
		}
		p.Case = &c
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// BeginTx starts a case opening transaction
func (r *CaseOpeningRepository) BeginTx(ctx context.Context) (repository.CaseOpeningTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &caseOpeningTx{tx: tx}, nil
}

type caseOpeningTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *caseOpeningTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *caseOpeningTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetUserForUpdate retrieves a user row with a SELECT FOR UPDATE lock
func (t *caseOpeningTx) GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return getUserForUpdate(ctx, t.tx, userID)
}

// UpdateUserBalance sets the user's balance
func (t *caseOpeningTx) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error {
	return updateUserBalance(ctx, t.tx, userID, balance)
}

// InsertPurchasedCase records a new unopened purchase
func (t *caseOpeningTx) InsertPurchasedCase(ctx context.Context, purchase *domain.PurchasedCase) error {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO purchased_cases (user_id, case_id)
		 VALUES ($1, $2)
		 RETURNING id, opened, created_at`,
		purchase.UserID, purchase.CaseID,
	).Scan(&purchase.ID, &purchase.Opened, &purchase.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert purchased case: %w", err)
	}
	return nil
}

// GetPurchasedCaseForUpdate retrieves a purchased case with a SELECT FOR UPDATE lock
func (t *caseOpeningTx) GetPurchasedCaseForUpdate(ctx context.Context, purchaseID uuid.UUID) (*domain.PurchasedCase, error) {
	p, err := scanPurchasedCase(t.tx.QueryRow(ctx,
		`SELECT `+purchasedCaseColumns+` FROM purchased_cases WHERE id = $1 FOR UPDATE`, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchased case with lock: %w", err)
	}
	return p, nil
}

// MarkPurchasedCaseOpened flips the opened flag. The WHERE clause refuses to
// flip it twice so a lost race surfaces as ErrCaseAlreadyOpened.
func (t *caseOpeningTx) MarkPurchasedCaseOpened(ctx context.Context, purchaseID uuid.UUID, openedAt time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE purchased_cases SET opened = TRUE, opened_at = $2
		 WHERE id = $1 AND NOT opened`, purchaseID, openedAt)
	if err != nil {
		return fmt.Errorf("failed to mark purchased case opened: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCaseAlreadyOpened
	}
	return nil
}

// InsertInventoryItem records a drawn skin in the user's inventory
func (t *caseOpeningTx) InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	return insertInventoryItem(ctx, t.tx, item)
}

// InsertLedgerEntry appends a ledger entry
func (t *caseOpeningTx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	return insertLedgerEntry(ctx, t.tx, entry)
}

func insertInventoryItem(ctx context.Context, tx pgx.Tx, item *domain.InventoryItem) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO inventory_items (user_id, skin_id, wear_float, value, acquired_from)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		item.UserID, item.SkinID, item.Float, item.Value, item.AcquiredFrom,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}
