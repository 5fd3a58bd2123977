package economy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
)

func testItem(userID uuid.UUID) *domain.InventoryItem {
	skin := &domain.Skin{
		ID:         uuid.New(),
		Name:       "AK-47 | Redline",
		WeaponType: "AK-47",
		Rarity:     domain.RarityClassified,
		MinValue:   100,
		MaxValue:   1000,
	}
	return &domain.InventoryItem{
		ID:           uuid.New(),
		UserID:       userID,
		SkinID:       skin.ID,
		Float:        0.2,
		Value:        750,
		AcquiredFrom: "case_open",
		Skin:         skin,
	}
}

func TestSellItem(t *testing.T) {
	ctx := context.Background()
	session := auth.Session{UserID: uuid.New(), Username: "seller"}

	t.Run("credits value and marks sold", func(t *testing.T) {
		item := testItem(session.UserID)
		user := &domain.User{ID: session.UserID, Username: "seller", Balance: 1000}

		repo := new(MockRepository)
		tx := new(MockTx)
		bus := new(MockBus)

		repo.On("GetInventoryItem", ctx, item.ID).Return(item, nil)
		repo.On("BeginTx", ctx).Return(tx, nil)
		tx.On("GetInventoryItemForUpdate", ctx, item.ID).Return(item, nil)
		tx.On("GetUserForUpdate", ctx, user.ID).Return(user, nil)
		tx.On("UpdateUserBalance", ctx, user.ID, int64(1750)).Return(nil)
		tx.On("MarkItemSold", ctx, item.ID, mock.AnythingOfType("time.Time")).Return(nil)
		tx.On("InsertLedgerEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.LedgerSkinSell &&
				e.Amount == 750 &&
				e.BalanceBefore == 1000 &&
				e.BalanceAfter == 1750 &&
				e.ReferenceID != nil && *e.ReferenceID == item.ID
		})).Return(nil)
		tx.On("Commit", ctx).Return(nil)
		tx.On("Rollback", ctx).Return(errors.New(domain.ErrMsgTxClosed))
		bus.On("Publish", ctx, mock.MatchedBy(func(e event.Event) bool {
			return e.Type == event.SkinSold
		})).Return(nil)

		svc := NewService(repo, bus)
		result, err := svc.SellItem(ctx, session, item.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(750), result.Proceeds)
		assert.Equal(t, int64(1750), result.NewBalance)
		assert.True(t, result.Item.IsSold)
		tx.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("already sold refuses before any transaction", func(t *testing.T) {
		item := testItem(session.UserID)
		soldAt := time.Now()
		item.IsSold = true
		item.SoldAt = &soldAt

		repo := new(MockRepository)
		repo.On("GetInventoryItem", ctx, item.ID).Return(item, nil)

		svc := NewService(repo, nil)
		_, err := svc.SellItem(ctx, session, item.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadySold)
		repo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("lost race surfaces after the lock", func(t *testing.T) {
		item := testItem(session.UserID)
		soldAt := time.Now()
		lockedCopy := *item
		lockedCopy.IsSold = true
		lockedCopy.SoldAt = &soldAt

		repo := new(MockRepository)
		tx := new(MockTx)

		repo.On("GetInventoryItem", ctx, item.ID).Return(item, nil)
		repo.On("BeginTx", ctx).Return(tx, nil)
		tx.On("GetInventoryItemForUpdate", ctx, item.ID).Return(&lockedCopy, nil)
		tx.On("Rollback", ctx).Return(nil)

		svc := NewService(repo, nil)
		_, err := svc.SellItem(ctx, session, item.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadySold)
		tx.AssertNotCalled(t, "UpdateUserBalance", mock.Anything, mock.Anything, mock.Anything)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("someone else's item reads as not found", func(t *testing.T) {
		item := testItem(uuid.New())

		repo := new(MockRepository)
		repo.On("GetInventoryItem", ctx, item.ID).Return(item, nil)

		svc := NewService(repo, nil)
		_, err := svc.SellItem(ctx, session, item.ID)

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	session := auth.Session{UserID: uuid.New()}

	t.Run("clamps limit to defaults", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListLedgerEntries", ctx, session.UserID, DefaultLedgerLimit).Return([]domain.LedgerEntry{}, nil)

		svc := NewService(repo, nil)
		_, err := svc.ListTransactions(ctx, session, 0)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("caps oversized limits", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListLedgerEntries", ctx, session.UserID, MaxLedgerLimit).Return([]domain.LedgerEntry{}, nil)

		svc := NewService(repo, nil)
		_, err := svc.ListTransactions(ctx, session, 10000)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestPriceCheck(t *testing.T) {
	ctx := context.Background()
	session := auth.Session{UserID: uuid.New()}

	t.Run("quotes deterministically within the jitter band", func(t *testing.T) {
		item := testItem(session.UserID)

		repo := new(MockRepository)
		repo.On("GetInventoryItem", ctx, item.ID).Return(item, nil)

		svc := NewService(repo, nil)
		first, err := svc.PriceCheck(ctx, session, item.ID)
		require.NoError(t, err)
		second, err := svc.PriceCheck(ctx, session, item.ID)
		require.NoError(t, err)

		assert.Equal(t, first.QuotedValue, second.QuotedValue)
		assert.InDelta(t, float64(item.Value), float64(first.QuotedValue), float64(item.Value)*0.1+1)
		assert.Equal(t, domain.WearFieldTested, first.Wear)
		assert.NotEmpty(t, first.FormattedQuote)
	})

	t.Run("someone else's item reads as not found", func(t *testing.T) {
		item := testItem(uuid.New())

		repo := new(MockRepository)
		repo.On("GetInventoryItem", ctx, item.ID).Return(item, nil)

		svc := NewService(repo, nil)
		_, err := svc.PriceCheck(ctx, session, item.ID)

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}
