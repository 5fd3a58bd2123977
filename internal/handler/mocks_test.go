package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/economy"
	"github.com/casefall/casefall/internal/reel"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, username, email, password)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.String(1), args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, session auth.Session) (*domain.User, error) {
	args := m.Called(ctx, session)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) ListCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	var cases []domain.Case
	if args.Get(0) != nil {
		cases = args.Get(0).([]domain.Case)
	}
	return cases, args.Error(1)
}

func (m *MockCaseService) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	var c *domain.Case
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Case)
	}
	return c, args.Error(1)
}

func (m *MockCaseService) GetDropTable(ctx context.Context, caseID uuid.UUID) ([]domain.CaseSlot, error) {
	args := m.Called(ctx, caseID)
	var slots []domain.CaseSlot
	if args.Get(0) != nil {
		slots = args.Get(0).([]domain.CaseSlot)
	}
	return slots, args.Error(1)
}

func (m *MockCaseService) PurchaseCase(ctx context.Context, session auth.Session, caseID uuid.UUID) (*domain.PurchasedCase, int64, error) {
	args := m.Called(ctx, session, caseID)
	var pc *domain.PurchasedCase
	if args.Get(0) != nil {
		pc = args.Get(0).(*domain.PurchasedCase)
	}
	return pc, args.Get(1).(int64), args.Error(2)
}

func (m *MockCaseService) ListPurchases(ctx context.Context, session auth.Session, unopenedOnly bool) ([]domain.PurchasedCase, error) {
	args := m.Called(ctx, session, unopenedOnly)
	var purchases []domain.PurchasedCase
	if args.Get(0) != nil {
		purchases = args.Get(0).([]domain.PurchasedCase)
	}
	return purchases, args.Error(1)
}

func (m *MockCaseService) OpenCase(ctx context.Context, session auth.Session, purchaseID uuid.UUID) (*domain.OpenResult, reel.Strip, error) {
	args := m.Called(ctx, session, purchaseID)
	var result *domain.OpenResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.OpenResult)
	}
	return result, args.Get(1).(reel.Strip), args.Error(2)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) ListInventory(ctx context.Context, session auth.Session, includeSold bool) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, session, includeSold)
	var items []domain.InventoryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.InventoryItem)
	}
	return items, args.Error(1)
}

func (m *MockEconomyService) SellItem(ctx context.Context, session auth.Session, itemID uuid.UUID) (*economy.SellResult, error) {
	args := m.Called(ctx, session, itemID)
	var result *economy.SellResult
	if args.Get(0) != nil {
		result = args.Get(0).(*economy.SellResult)
	}
	return result, args.Error(1)
}

func (m *MockEconomyService) ListTransactions(ctx context.Context, session auth.Session, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, session, limit)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockEconomyService) PriceCheck(ctx context.Context, session auth.Session, itemID uuid.UUID) (*economy.PriceQuote, error) {
	args := m.Called(ctx, session, itemID)
	var quote *economy.PriceQuote
	if args.Get(0) != nil {
		quote = args.Get(0).(*economy.PriceQuote)
	}
	return quote, args.Error(1)
}
