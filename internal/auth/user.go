// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// User represents a registered account.
type User struct {
	ID           ulid.ULID
	Name         string
	Email        string
	PasswordHash string
	ImageURL     *string // nil when the account has no avatar
	CreatedAt    time.Time
}

// NewUser creates a validated User instance with a fresh identifier.
// Email is normalized to lower case; the password hash must already be
// computed by a PasswordHasher.
func NewUser(name, email, passwordHash string) (*User, error) {
	if name == "" {
		return nil, oops.Code(CodeValidation).Errorf("name cannot be empty")
	}
	if email == "" {
		return nil, oops.Code(CodeValidation).Errorf("email cannot be empty")
	}
	if passwordHash == "" {
		return nil, oops.Code(CodeValidation).Errorf("password hash cannot be empty")
	}

	return &User{
		ID:           ulid.Make(),
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// uniqueness constraint agree on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository manages user persistence.
//
// Implementations must return an error wrapping ErrNotFound from the Get
// methods when no user matches, and an error carrying CodeEmailTaken from
// Create when the email uniqueness constraint is violated.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)
}
