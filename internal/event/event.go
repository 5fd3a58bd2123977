package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Common event types
const (
	CasePurchased      Type = "case.purchased"
	CaseOpened         Type = "case.opened"
	SkinSold           Type = "skin.sold"
	UserRegistered     Type = "user.registered"
	DailyRewardGranted Type = "user.daily_reward"
)

// Typed event payloads for type safety

// CasePurchasedPayloadV1 is the typed payload for case purchase events
type CasePurchasedPayloadV1 struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	CaseID     string `json:"case_id"`
	CaseName   string `json:"case_name"`
	PurchaseID string `json:"purchase_id"`
	Price      int64  `json:"price"`
	Timestamp  int64  `json:"timestamp"`
}

// CaseOpenedPayloadV1 is the typed payload for case open events
type CaseOpenedPayloadV1 struct {
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	CaseID     string  `json:"case_id"`
	CaseName   string  `json:"case_name"`
	PurchaseID string  `json:"purchase_id"`
	SkinName   string  `json:"skin_name"`
	WeaponType string  `json:"weapon_type"`
	Rarity     string  `json:"rarity"`
	Wear       string  `json:"wear"`
	Float      float64 `json:"float"`
	Value      int64   `json:"value"`
	Timestamp  int64   `json:"timestamp"`
}

// SkinSoldPayloadV1 is the typed payload for skin sale events
type SkinSoldPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ItemID    string `json:"item_id"`
	SkinName  string `json:"skin_name"`
	Value     int64  `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// UserRegisteredPayloadV1 is the typed payload for registration events
type UserRegisteredPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// DailyRewardPayloadV1 is the typed payload for daily reward events
type DailyRewardPayloadV1 struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewCasePurchasedEvent creates a new case purchased event
func NewCasePurchasedEvent(user *domain.User, c *domain.Case, purchaseID uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CasePurchased,
		Payload: CasePurchasedPayloadV1{
			UserID:     user.ID.String(),
			Username:   user.Username,
			CaseID:     c.ID.String(),
			CaseName:   c.Name,
			PurchaseID: purchaseID.String(),
			Price:      c.Price,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewCaseOpenedEvent creates a new case opened event
func NewCaseOpenedEvent(user *domain.User, c *domain.Case, result *domain.OpenResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CaseOpened,
		Payload: CaseOpenedPayloadV1{
			UserID:     user.ID.String(),
			Username:   user.Username,
			CaseID:     c.ID.String(),
			CaseName:   c.Name,
			PurchaseID: result.PurchaseID.String(),
			SkinName:   result.Skin.Name,
			WeaponType: result.Skin.WeaponType,
			Rarity:     string(result.Skin.Rarity),
			Wear:       string(result.Wear),
			Float:      result.Float,
			Value:      result.Value,
			Timestamp:  result.OpenedAt.Unix(),
		},
	}
}

// NewSkinSoldEvent creates a new skin sold event
func NewSkinSoldEvent(user *domain.User, item *domain.InventoryItem) Event {
	skinName := ""
	if item.Skin != nil {
		skinName = item.Skin.Name
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    SkinSold,
		Payload: SkinSoldPayloadV1{
			UserID:    user.ID.String(),
			Username:  user.Username,
			ItemID:    item.ID.String(),
			SkinName:  skinName,
			Value:     item.Value,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(user *domain.User) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserRegistered,
		Payload: UserRegisteredPayloadV1{
			UserID:    user.ID.String(),
			Username:  user.Username,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewDailyRewardEvent creates a new daily reward event
func NewDailyRewardEvent(user *domain.User, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyRewardGranted,
		Payload: DailyRewardPayloadV1{
			UserID:    user.ID.String(),
			Username:  user.Username,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; slow consumers should dispatch their own
	// goroutines.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
