// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package web

import (
	"encoding/json"
	"net/http"

	"github.com/parleyhq/parley/internal/auth"
	"github.com/parleyhq/parley/pkg/errutil"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes surfaced to clients.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeValidation   = "validation_error"
	ErrCodeConflict     = "conflict"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeInternal     = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeServiceError maps a service-layer error to an HTTP response. Client
// errors keep their message; anything unmapped is an internal failure whose
// detail is logged server-side and never echoed to the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch errutil.Code(err) {
	case auth.CodeValidation:
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case auth.CodeEmailTaken:
		writeError(w, http.StatusConflict, ErrCodeConflict, "user already exists")
	case auth.CodeUserNotFound:
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "user does not exist")
	case auth.CodeInvalidCredentials:
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case auth.CodeUnauthenticated, auth.CodeSessionInvalid, auth.CodeSessionExpired:
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
	default:
		errutil.LogError(s.logger, "request failed", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
