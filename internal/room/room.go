// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

// Package room provides room records grouping sets of users, and the
// membership queries over them.
package room

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/parleyhq/parley/internal/auth"
)

// Room groups a set of users. Member ids are non-owning references into the
// user store; they are persisted exactly as given, without existence
// validation.
type Room struct {
	ID        ulid.ULID
	MemberIDs []string
	CreatedAt time.Time
}

// NewRoom creates a Room referencing the given member ids.
func NewRoom(memberIDs []string) *Room {
	return &Room{
		ID:        ulid.Make(),
		MemberIDs: memberIDs,
		CreatedAt: time.Now().UTC(),
	}
}

// MemberRoom is a room with its member references expanded to user records.
// The member list may be narrowed by a name filter, so it is not necessarily
// the full membership.
type MemberRoom struct {
	Room    *Room
	Members []*auth.User
}

// Repository manages room persistence.
type Repository interface {
	// Create stores a new room.
	Create(ctx context.Context, room *Room) error

	// ListByMember returns all rooms whose member set contains userID,
	// with member references expanded to user records. When nameFilter is
	// non-empty, only members whose name matches it case-insensitively
	// (substring/regex) are included; rooms are returned even when the
	// filter leaves them with no members.
	ListByMember(ctx context.Context, userID ulid.ULID, nameFilter string) ([]*MemberRoom, error)
}
