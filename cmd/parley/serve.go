// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley/internal/auth"
	authpg "github.com/parleyhq/parley/internal/auth/postgres"
	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/logging"
	"github.com/parleyhq/parley/internal/observability"
	"github.com/parleyhq/parley/internal/room"
	roompg "github.com/parleyhq/parley/internal/room/postgres"
	"github.com/parleyhq/parley/internal/store"
	"github.com/parleyhq/parley/internal/web"
	"github.com/parleyhq/parley/pkg/errutil"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Parley API server",
		Long: `Start the Parley API server together with the observability
listener (metrics and health probes) and the session sweeper.`,
		RunE: runServe,
	}

	cmd.Flags().String("server.addr", "", "API listen address (overrides config)")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL (overrides config)")
	cmd.Flags().String("observability.addr", "", "metrics/health listen address (overrides config)")
	cmd.Flags().String("logging.format", "", "log format: json or text (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("parley", version, cfg.Logging.Format)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connected")

	userRepo := authpg.NewUserRepository(pool)
	sessionRepo := authpg.NewSessionRepository(pool)
	roomRepo := roompg.NewRepository(pool)

	authSvc, err := auth.NewServiceWithLogger(userRepo, sessionRepo, auth.NewBcryptHasher(), logger)
	if err != nil {
		return err
	}
	authSvc.SetSessionTTL(cfg.Session.TTL)

	roomSvc, err := room.NewServiceWithLogger(roomRepo, logger)
	if err != nil {
		return err
	}

	obsSrv := observability.NewServer(cfg.Observability.Addr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})
	obsErrCh, err := obsSrv.Start()
	if err != nil {
		return err
	}

	apiSrv, err := web.NewServer(web.Config{
		Addr:           cfg.Server.Addr,
		CookieName:     cfg.Server.CookieName,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, authSvc, roomSvc, logger, obsSrv.Metrics())
	if err != nil {
		return err
	}

	apiErrCh := make(chan error, 1)
	go func() {
		apiErrCh <- apiSrv.ListenAndServe()
	}()

	go sweepSessions(ctx, sessionRepo, cfg.Session.SweepInterval, logger)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-apiErrCh:
		if err != nil {
			errutil.LogError(logger, "api server failed", err)
			return err
		}
	case err := <-obsErrCh:
		if err != nil {
			errutil.LogError(logger, "observability server failed", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		errutil.LogError(logger, "api server shutdown failed", err)
	}
	if err := obsSrv.Stop(shutdownCtx); err != nil {
		errutil.LogError(logger, "observability server shutdown failed", err)
	}

	return nil
}

// sweepSessions periodically deletes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, sessions auth.SessionRepository, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := sessions.DeleteExpired(ctx)
			if err != nil {
				errutil.LogError(logger, "session sweep failed", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired sessions removed", "count", deleted)
			}
		}
	}
}
