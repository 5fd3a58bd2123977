package caseopening

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/repository"
	"github.com/casefall/casefall/internal/utils"
)

// PurchaseCase debits the case price from the user's balance and grants an
// unopened purchase, all in one transaction under a user row lock. Returns
// the purchase and the balance after the debit.
func (s *service) PurchaseCase(ctx context.Context, session auth.Session, caseID uuid.UUID) (*domain.PurchasedCase, int64, error) {
	log := logger.FromContext(ctx)

	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, 0, err
	}
	if !c.CanBePurchased() {
		return nil, 0, domain.ErrCaseNotFound
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, session.UserID)
	if err != nil {
		return nil, 0, err
	}

	if !user.CanAfford(c.Price) {
		return nil, 0, fmt.Errorf("%w: balance %s, price %s",
			domain.ErrInsufficientFunds, utils.FormatCents(user.Balance), utils.FormatCents(c.Price))
	}

	newBalance := user.Balance - c.Price
	if err := tx.UpdateUserBalance(ctx, user.ID, newBalance); err != nil {
		return nil, 0, err
	}

	purchase := &domain.PurchasedCase{
		UserID: user.ID,
		CaseID: c.ID,
		Case:   c,
	}
	if err := tx.InsertPurchasedCase(ctx, purchase); err != nil {
		return nil, 0, err
	}

	entry := &domain.LedgerEntry{
		UserID:        user.ID,
		Type:          domain.LedgerCasePurchase,
		Amount:        -c.Price,
		BalanceBefore: user.Balance,
		BalanceAfter:  newBalance,
		Description:   fmt.Sprintf("Purchased %s for %s", c.Name, utils.FormatCents(c.Price)),
		ReferenceID:   &purchase.ID,
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info(LogMsgCasePurchased,
		"userID", user.ID,
		"caseID", c.ID,
		"purchaseID", purchase.ID,
		"price", c.Price,
		"newBalance", newBalance)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewCasePurchasedEvent(user, c, purchase.ID)); err != nil {
			log.Warn("Failed to publish case purchased event", "error", err)
		}
	}

	return purchase, newBalance, nil
}
