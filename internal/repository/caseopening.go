package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/domain"
)

// CaseOpening defines the interface for case and purchase persistence
type CaseOpening interface {
	ListActiveCases(ctx context.Context) ([]domain.Case, error)
	GetCaseByID(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)
	GetCaseSlots(ctx context.Context, caseID uuid.UUID) ([]domain.CaseSlot, error)
	GetPurchasedCase(ctx context.Context, purchaseID uuid.UUID) (*domain.PurchasedCase, error)
	ListPurchasedCases(ctx context.Context, userID uuid.UUID, unopenedOnly bool) ([]domain.PurchasedCase, error)

	BeginTx(ctx context.Context) (CaseOpeningTx, error)
}

// CaseOpeningTx defines the interface for case opening transactions.
// Purchase debits the balance under a user row lock; open consumes the
// purchase under a purchase row lock so each purchase opens exactly once.
type CaseOpeningTx interface {
	Tx
	GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error
	InsertPurchasedCase(ctx context.Context, purchase *domain.PurchasedCase) error
	GetPurchasedCaseForUpdate(ctx context.Context, purchaseID uuid.UUID) (*domain.PurchasedCase, error)
	MarkPurchasedCaseOpened(ctx context.Context, purchaseID uuid.UUID, openedAt time.Time) error
	InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error
	InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
}
