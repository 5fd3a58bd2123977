package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/domain"
)

// Economy defines the interface for inventory and ledger persistence
type Economy interface {
	GetInventoryItem(ctx context.Context, itemID uuid.UUID) (*domain.InventoryItem, error)
	ListInventory(ctx context.Context, userID uuid.UUID, includeSold bool) ([]domain.InventoryItem, error)
	ListLedgerEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error)

	BeginTx(ctx context.Context) (EconomyTx, error)
}

// EconomyTx defines the interface for economy transactions
type EconomyTx interface {
	Tx
	GetInventoryItemForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.InventoryItem, error)
	MarkItemSold(ctx context.Context, itemID uuid.UUID, soldAt time.Time) error
	GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error
	InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
}
