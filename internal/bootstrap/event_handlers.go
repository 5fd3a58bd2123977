package bootstrap

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/casefall/casefall/internal/config"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/metrics"
	"github.com/casefall/casefall/internal/notify"
	"github.com/casefall/casefall/internal/sse"
)

// RegisterEventHandlers wires every event consumer onto the bus:
// the Prometheus collector, the SSE live feed subscriber, and the
// optional Discord rare-drop announcer.
func RegisterEventHandlers(cfg *config.Config, eventBus event.Bus, hub *sse.Hub) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, eventBus).Subscribe()
	logger.Info(LogMsgLiveFeedSubscribed)

	if cfg.DiscordToken == "" || cfg.DiscordChannelID == "" {
		logger.Info(LogMsgAnnouncerDisabled)
		return nil
	}

	// Embeds are sent over REST, no gateway connection needed
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedConnectDiscord, err)
	}

	notify.NewAnnouncer(session, cfg.DiscordChannelID).Subscribe(eventBus)
	logger.Info(LogMsgAnnouncerEnabled, "channel_id", cfg.DiscordChannelID)

	return nil
}
