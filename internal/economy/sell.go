package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/repository"
	"github.com/casefall/casefall/internal/utils"
)

// SellItem credits the item's recorded value to the user's balance and
// marks the item sold, all in one transaction under an item row lock. An
// item sells at most once; the flag transition is irreversible.
func (s *service) SellItem(ctx context.Context, session auth.Session, itemID uuid.UUID) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellItemCalled, "userID", session.UserID, "itemID", itemID)

	item, err := s.repo.GetInventoryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != session.UserID {
		return nil, domain.ErrItemNotFound
	}
	if item.IsSold {
		return nil, domain.ErrAlreadySold
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetInventoryItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if locked.IsSold {
		return nil, domain.ErrAlreadySold
	}

	user, err := tx.GetUserForUpdate(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	newBalance := user.Balance + locked.Value
	if err := tx.UpdateUserBalance(ctx, user.ID, newBalance); err != nil {
		return nil, err
	}

	soldAt := time.Now()
	if err := tx.MarkItemSold(ctx, itemID, soldAt); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		UserID:        user.ID,
		Type:          domain.LedgerSkinSell,
		Amount:        locked.Value,
		BalanceBefore: user.Balance,
		BalanceAfter:  newBalance,
		Description:   fmt.Sprintf("Sold %s for %s", item.Skin.Name, utils.FormatCents(locked.Value)),
		ReferenceID:   &itemID,
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	item.IsSold = true
	item.SoldAt = &soldAt

	log.Info(LogMsgItemSold,
		"userID", user.ID,
		"itemID", itemID,
		"skin", item.Skin.Name,
		"proceeds", locked.Value,
		"newBalance", newBalance)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewSkinSoldEvent(user, item)); err != nil {
			log.Warn("Failed to publish skin sold event", "error", err)
		}
	}

	return &SellResult{
		Item:       item,
		Proceeds:   locked.Value,
		NewBalance: newBalance,
	}, nil
}
