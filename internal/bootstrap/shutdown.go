package bootstrap

import (
	"context"

	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/server"
	"github.com/casefall/casefall/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application components in dependency order:
// the HTTP server first so no new requests arrive, then the SSE hub, then
// the event publisher so pending events are flushed to the dead-letter
// file instead of lost.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		logger.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	logger.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		logger.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	logger.Info(LogMsgServerStopped)
}
