package economy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/repository"
)

// SellResult is the outcome of selling an inventory item
type SellResult struct {
	Item       *domain.InventoryItem `json:"item"`
	Proceeds   int64                 `json:"proceeds"`
	NewBalance int64                 `json:"new_balance"`
}

// Service defines the interface for inventory and ledger operations
type Service interface {
	ListInventory(ctx context.Context, session auth.Session, includeSold bool) ([]domain.InventoryItem, error)
	SellItem(ctx context.Context, session auth.Session, itemID uuid.UUID) (*SellResult, error)
	ListTransactions(ctx context.Context, session auth.Session, limit int) ([]domain.LedgerEntry, error)
	PriceCheck(ctx context.Context, session auth.Session, itemID uuid.UUID) (*PriceQuote, error)
}

type service struct {
	repo repository.Economy
	bus  event.Bus
}

// NewService creates a new economy service
func NewService(repo repository.Economy, bus event.Bus) Service {
	return &service{repo: repo, bus: bus}
}

// ListInventory returns the session user's items, sold ones included on request
func (s *service) ListInventory(ctx context.Context, session auth.Session, includeSold bool) ([]domain.InventoryItem, error) {
	items, err := s.repo.ListInventory(ctx, session.UserID, includeSold)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// ListTransactions returns the session user's most recent ledger entries
func (s *service) ListTransactions(ctx context.Context, session auth.Session, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultLedgerLimit
	}
	if limit > MaxLedgerLimit {
		limit = MaxLedgerLimit
	}
	entries, err := s.repo.ListLedgerEntries(ctx, session.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return entries, nil
}
