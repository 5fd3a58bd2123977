package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case represents a purchasable case. Reference data, immutable once
// published.
type Case struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // cents
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CanBePurchased reports whether the case is live and priced.
func (c *Case) CanBePurchased() bool {
	return c.IsActive && c.Price > 0
}

// CaseSlot is one (skin, drop weight) pair of a case's drop table.
type CaseSlot struct {
	CaseID     uuid.UUID `json:"case_id"`
	SkinID     uuid.UUID `json:"skin_id"`
	DropWeight float64   `json:"drop_weight"`
	Skin       *Skin     `json:"skin,omitempty"`
}

// PurchasedCase is a user-owned, single-use right to one open of a case.
// Created by purchase (which debits the balance), consumed exactly once by
// open: the Opened flag transition is irreversible.
type PurchasedCase struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CaseID    uuid.UUID  `json:"case_id"`
	Opened    bool       `json:"opened"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Case      *Case      `json:"case,omitempty"`
}

// OpenResult is the authoritative outcome of opening a purchased case.
// Immutable once persisted; the reel presentation only consumes it.
type OpenResult struct {
	PurchaseID      uuid.UUID `json:"purchase_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Skin            *Skin     `json:"skin"`
	Float           float64   `json:"float"`
	Wear            Wear      `json:"wear"`
	Value           int64     `json:"value"` // cents
	NewBalance      int64     `json:"new_balance"`
	OpenedAt        time.Time `json:"opened_at"`
}
