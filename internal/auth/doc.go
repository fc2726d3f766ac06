// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

// Package auth provides account registration, credential verification, and
// server-side session management for Parley.
//
// The package exposes a Service that orchestrates the UserRepository,
// SessionRepository, and PasswordHasher collaborators. Persistence
// implementations live in the postgres subpackage.
package auth
