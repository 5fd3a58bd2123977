package metrics

import (
	"context"

	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector records
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CasePurchased,
		event.CaseOpened,
		event.SkinSold,
		event.UserRegistered,
		event.DailyRewardGranted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CasePurchased:
		payload, err := event.DecodePayload[event.CasePurchasedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		CasesPurchased.WithLabelValues(payload.CaseName).Inc()
		MoneySpent.Add(float64(payload.Price))

	case event.CaseOpened:
		payload, err := event.DecodePayload[event.CaseOpenedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		CasesOpened.WithLabelValues(payload.CaseName).Inc()
		Drops.WithLabelValues(payload.Rarity, payload.Wear).Inc()
		DropValue.Observe(float64(payload.Value))

	case event.SkinSold:
		payload, err := event.DecodePayload[event.SkinSoldPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		SkinsSold.Inc()
		MoneyEarned.Add(float64(payload.Value))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
