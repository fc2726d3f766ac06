// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

// Package web exposes the Parley JSON API over HTTP: registration, login,
// logout, session check, and room operations. It adapts service-layer errors
// to status codes and resolves session cookies into an explicit
// SessionContext on the request context.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/parleyhq/parley/internal/auth"
	"github.com/parleyhq/parley/internal/observability"
	"github.com/parleyhq/parley/internal/room"
)

// AuthService is the auth surface the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*auth.User, error)
	Login(ctx context.Context, email, password string) (*auth.Session, string, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*auth.Session, error)
}

// RoomService is the room surface the handlers depend on.
type RoomService interface {
	ListForUser(ctx context.Context, userID ulid.ULID, search string) ([]*room.MemberRoom, error)
	Create(ctx context.Context, memberIDs []string) (*room.Room, error)
}

// Config holds the server's HTTP-level settings.
type Config struct {
	Addr           string
	CookieName     string
	AllowedOrigins []string
}

// Server is the Parley HTTP API server.
type Server struct {
	cfg     Config
	authSvc AuthService
	roomSvc RoomService
	logger  *slog.Logger
	metrics *observability.Metrics
	httpSrv *http.Server
}

// NewServer creates a new API server. metrics may be nil (e.g. in tests);
// recording is skipped in that case.
func NewServer(cfg Config, authSvc AuthService, roomSvc RoomService, logger *slog.Logger, metrics *observability.Metrics) (*Server, error) {
	if authSvc == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if roomSvc == nil {
		return nil, oops.Errorf("room service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "parley_session"
	}
	return &Server{
		cfg:     cfg,
		authSvc: authSvc,
		roomSvc: roomSvc,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Handler returns the root HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// ListenAndServe starts the API server and blocks until it stops. The
// returned error is nil after a graceful Shutdown.
func (s *Server) ListenAndServe() error {
	s.httpSrv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("api server started", "addr", s.cfg.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return oops.With("addr", s.cfg.Addr).Wrap(err)
	}
	return nil
}

// Shutdown gracefully stops the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return oops.With("operation", "shutdown_api_server").Wrap(err)
	}
	s.logger.Info("api server stopped")
	return nil
}
