package caseopening

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/reel"
	"github.com/casefall/casefall/internal/repository"
)

// OpenCase consumes an unopened purchase: it draws a skin and wear float
// from the case's probability table, records the item, and marks the
// purchase opened, all in one transaction under a purchase row lock. The
// purchase was already paid for, so the balance is untouched; the ledger
// entry records the draw at amount zero.
//
// The returned strip is the reel presentation of this result: decoys plus
// the drawn skin at the winning slot.
func (s *service) OpenCase(ctx context.Context, session auth.Session, purchaseID uuid.UUID) (*domain.OpenResult, reel.Strip, error) {
	log := logger.FromContext(ctx)

	purchase, err := s.repo.GetPurchasedCase(ctx, purchaseID)
	if err != nil {
		return nil, reel.Strip{}, err
	}
	if purchase.UserID != session.UserID {
		return nil, reel.Strip{}, domain.ErrPurchaseNotFound
	}
	if purchase.Opened {
		return nil, reel.Strip{}, domain.ErrCaseAlreadyOpened
	}

	c, err := s.repo.GetCaseByID(ctx, purchase.CaseID)
	if err != nil {
		return nil, reel.Strip{}, fmt.Errorf("%s: %w", ErrContextFailedToGetCase, err)
	}

	table, err := s.compiledTable(ctx, purchase.CaseID)
	if err != nil {
		return nil, reel.Strip{}, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, reel.Strip{}, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Re-check under the lock; the early check above only short-circuits
	locked, err := tx.GetPurchasedCaseForUpdate(ctx, purchaseID)
	if err != nil {
		return nil, reel.Strip{}, err
	}
	if locked.Opened {
		return nil, reel.Strip{}, domain.ErrCaseAlreadyOpened
	}

	skin, f := table.Draw(s.rnd)
	wear := domain.WearFromFloat(f)
	value := skin.ValueForFloat(f)
	openedAt := time.Now()

	item := &domain.InventoryItem{
		UserID:       session.UserID,
		SkinID:       skin.ID,
		Float:        f,
		Value:        value,
		AcquiredFrom: AcquiredFromCaseOpen,
		Skin:         skin,
	}
	if err := tx.InsertInventoryItem(ctx, item); err != nil {
		return nil, reel.Strip{}, err
	}

	user, err := tx.GetUserForUpdate(ctx, session.UserID)
	if err != nil {
		return nil, reel.Strip{}, err
	}

	entry := &domain.LedgerEntry{
		UserID:        user.ID,
		Type:          domain.LedgerCaseOpen,
		Amount:        0,
		BalanceBefore: user.Balance,
		BalanceAfter:  user.Balance,
		Description:   fmt.Sprintf("Opened %s: %s (%s)", c.Name, skin.Name, wear),
		ReferenceID:   &item.ID,
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, reel.Strip{}, err
	}

	if err := tx.MarkPurchasedCaseOpened(ctx, purchaseID, openedAt); err != nil {
		return nil, reel.Strip{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, reel.Strip{}, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	result := &domain.OpenResult{
		PurchaseID:      purchaseID,
		InventoryItemID: item.ID,
		Skin:            skin,
		Float:           f,
		Wear:            wear,
		Value:           value,
		NewBalance:      user.Balance,
		OpenedAt:        openedAt,
	}

	log.Info(LogMsgCaseOpened,
		"userID", user.ID,
		"purchaseID", purchaseID,
		"skin", skin.Name,
		"rarity", skin.Rarity,
		"wear", wear,
		"float", f,
		"value", value)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewCaseOpenedEvent(user, c, result)); err != nil {
			log.Warn("Failed to publish case opened event", "error", err)
		}
	}

	strip := reel.BuildStrip(table, skin, s.rnd)
	return result, strip, nil
}
