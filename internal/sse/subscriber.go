package sse

import (
	"context"
	"log/slog"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/utils"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all feed-relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.CasePurchased, s.handleCasePurchased)
	s.bus.Subscribe(event.CaseOpened, s.handleCaseOpened)
	s.bus.Subscribe(event.SkinSold, s.handleSkinSold)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.CasePurchased),
			string(event.CaseOpened),
			string(event.SkinSold),
		})
}

func (s *Subscriber) handleCasePurchased(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CasePurchasedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgDecodeError, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeCasePurchased, CasePurchasedPayload{
		Username: payload.Username,
		CaseName: payload.CaseName,
		Price:    payload.Price,
	})

	return nil
}

func (s *Subscriber) handleCaseOpened(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CaseOpenedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgDecodeError, "event_type", evt.Type, "error", err)
		return nil
	}

	drop := DropPayload{
		Username:       payload.Username,
		CaseName:       payload.CaseName,
		SkinName:       payload.SkinName,
		WeaponType:     payload.WeaponType,
		Rarity:         payload.Rarity,
		Wear:           payload.Wear,
		Float:          payload.Float,
		Value:          payload.Value,
		FormattedValue: utils.FormatCents(payload.Value),
	}

	s.hub.Broadcast(EventTypeDrop, drop)
	if isRare(payload.Rarity) {
		s.hub.Broadcast(EventTypeRareDrop, drop)
	}

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeDrop,
		"skin", drop.SkinName,
		"rarity", drop.Rarity)

	return nil
}

func (s *Subscriber) handleSkinSold(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SkinSoldPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgDecodeError, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeSkinSold, SkinSoldPayload{
		Username: payload.Username,
		SkinName: payload.SkinName,
		Value:    payload.Value,
	})

	return nil
}

func isRare(rarity string) bool {
	return rarity == string(domain.RarityCovert) || rarity == string(domain.RarityRareSpecial)
}
