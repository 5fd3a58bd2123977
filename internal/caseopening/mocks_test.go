package caseopening

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockRepository) GetCaseByID(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockRepository) GetCaseSlots(ctx context.Context, caseID uuid.UUID) ([]domain.CaseSlot, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseSlot), args.Error(1)
}

func (m *MockRepository) GetPurchasedCase(ctx context.Context, purchaseID uuid.UUID) (*domain.PurchasedCase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedCase), args.Error(1)
}

func (m *MockRepository) ListPurchasedCases(ctx context.Context, userID uuid.UUID, unopenedOnly bool) ([]domain.PurchasedCase, error) {
	args := m.Called(ctx, userID, unopenedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchasedCase), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CaseOpeningTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CaseOpeningTx), args.Error(1)
}

// MockTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTx) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int64) error {
	args := m.Called(ctx, userID, balance)
	return args.Error(0)
}

func (m *MockTx) InsertPurchasedCase(ctx context.Context, purchase *domain.PurchasedCase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockTx) GetPurchasedCaseForUpdate(ctx context.Context, purchaseID uuid.UUID) (*domain.PurchasedCase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedCase), args.Error(1)
}

func (m *MockTx) MarkPurchasedCaseOpened(ctx context.Context, purchaseID uuid.UUID, openedAt time.Time) error {
	args := m.Called(ctx, purchaseID, openedAt)
	return args.Error(0)
}

func (m *MockTx) InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockBus
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Publish(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}
