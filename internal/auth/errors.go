// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes attached to oops errors by this package. The web layer maps
// these to HTTP statuses; everything without a mapping is treated as an
// internal failure.
const (
	CodeValidation         = "AUTH_VALIDATION"
	CodeEmailTaken         = "AUTH_EMAIL_TAKEN"
	CodeUserNotFound       = "AUTH_USER_NOT_FOUND"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeUnauthenticated    = "AUTH_UNAUTHENTICATED"
	CodeSessionInvalid     = "SESSION_INVALID"
	CodeSessionExpired     = "SESSION_EXPIRED"
)
