package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/bootstrap"
	"github.com/casefall/casefall/internal/caseopening"
	"github.com/casefall/casefall/internal/config"
	"github.com/casefall/casefall/internal/database"
	"github.com/casefall/casefall/internal/economy"
	"github.com/casefall/casefall/internal/server"
	"github.com/casefall/casefall/internal/sse"
	"github.com/casefall/casefall/internal/user"
)

const (
	dbMaxConnections  = 25
	dbMaxIdleTime     = 5 * time.Minute
	dbMaxLifetime     = 30 * time.Minute
	shutdownTimeout   = 15 * time.Second
	startupSyncWindow = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("casefall failed to start: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	repos := bootstrap.InitializeRepositories(pool)

	syncCtx, cancelSync := context.WithTimeout(ctx, startupSyncWindow)
	defer cancelSync()
	if err := bootstrap.SyncCatalog(syncCtx, cfg, repos.Catalog); err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return fmt.Errorf("initialize events: %w", err)
	}

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(cfg, eventBus, hub); err != nil {
		return fmt.Errorf("register event handlers: %w", err)
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret)

	userService := user.NewService(repos.User, issuer, publisher)
	caseService := caseopening.NewService(repos.CaseOpening, publisher, nil)
	economyService := economy.NewService(repos.Economy, publisher)

	srv := server.NewServer(cfg.Port, issuer, cfg.TrustedProxies, pool, userService, caseService, economyService, hub)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.Port)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Hub:                hub,
		ResilientPublisher: publisher,
	})

	return nil
}
