// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package web

import (
	"context"

	"github.com/parleyhq/parley/internal/auth"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	ctxKeyRequestID contextKey = "request_id"
	ctxKeySession   contextKey = "session"
)

// SessionContext carries the resolved session of a request. It is an
// explicit value threaded through the request context, never mutated in
// place: handlers read it, nothing writes it after the middleware sets it.
type SessionContext struct {
	Session *auth.Session // nil when the request is unauthenticated
}

// Present reports whether the request carries a valid session.
func (sc SessionContext) Present() bool {
	return sc.Session != nil
}

// withSession returns a context carrying the given session context.
func withSession(ctx context.Context, sc SessionContext) context.Context {
	return context.WithValue(ctx, ctxKeySession, sc)
}

// SessionFromContext extracts the SessionContext from a request context.
// Returns an absent SessionContext when the middleware did not run or no
// valid session was found.
func SessionFromContext(ctx context.Context) SessionContext {
	if sc, ok := ctx.Value(ctxKeySession).(SessionContext); ok {
		return sc
	}
	return SessionContext{}
}
