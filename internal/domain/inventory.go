package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a skin owned by a user, the durable record of one draw.
type InventoryItem struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	SkinID       uuid.UUID  `json:"skin_id"`
	Float        float64    `json:"float"`
	Value        int64      `json:"value"` // cents, fixed at draw time
	AcquiredFrom string     `json:"acquired_from"`
	IsSold       bool       `json:"is_sold"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Skin         *Skin      `json:"skin,omitempty"`
}

// Wear derives the condition tier from the item's stored float.
func (i *InventoryItem) Wear() Wear {
	return WearFromFloat(i.Float)
}

// CanBeSold reports whether the item is still eligible for sale.
func (i *InventoryItem) CanBeSold() bool {
	return !i.IsSold
}
