// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)

			// Session-aware routes
			r.Group(func(r chi.Router) {
				r.Use(s.sessionMiddleware)
				r.Post("/logout", s.handleLogout)
				r.Get("/session", s.handleCheckSession)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/", s.handleGetRooms)
			r.Post("/", s.handleAddRoom)
		})
	})

	return r
}
