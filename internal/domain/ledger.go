package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerType classifies a balance ledger entry
type LedgerType string

const (
	LedgerStartingBalance LedgerType = "starting_balance"

	LedgerCasePurchase LedgerType = "case_purchase"
	LedgerCaseOpen     LedgerType = "case_open"
	LedgerSkinSell     LedgerType = "skin_sell"
	LedgerDailyLogin   LedgerType = "daily_login"
)

// LedgerEntry records one balance-affecting (or balance-neutral, for opens)
// event. Append-only.
type LedgerEntry struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Type          LedgerType `json:"type"`
	Amount        int64      `json:"amount"` // cents, signed: negative debits
	BalanceBefore int64      `json:"balance_before"`
	BalanceAfter  int64      `json:"balance_after"`
	Description   string     `json:"description"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
