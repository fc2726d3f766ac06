// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package room

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service provides room creation and membership queries.
type Service struct {
	rooms  Repository
	logger *slog.Logger
}

// NewService creates a new Service with the default logger.
func NewService(rooms Repository) (*Service, error) {
	return NewServiceWithLogger(rooms, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(rooms Repository, logger *slog.Logger) (*Service, error) {
	if rooms == nil {
		return nil, oops.Errorf("rooms repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{rooms: rooms, logger: logger}, nil
}

// ListForUser returns the rooms the user belongs to, each with its member
// list expanded and filtered by search (case-insensitive name match; empty
// search matches everyone). Rooms whose filtered member list is empty are
// dropped entirely.
//
// The filter applies to every member, including the requester: a search
// that does not match the requester's own name can return rooms without the
// requester listed, or exclude the room altogether.
func (s *Service) ListForUser(ctx context.Context, userID ulid.ULID, search string) ([]*MemberRoom, error) {
	if userID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("ROOM_INVALID_USER").Errorf("user ID cannot be zero")
	}

	rooms, err := s.rooms.ListByMember(ctx, userID, search)
	if err != nil {
		return nil, oops.Code("ROOM_LIST_FAILED").
			With("operation", "list rooms by member").
			With("user_id", userID.String()).
			Wrap(err)
	}

	filtered := make([]*MemberRoom, 0, len(rooms))
	for _, r := range rooms {
		if len(r.Members) == 0 {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// Create persists a new room referencing exactly the given user ids.
// References are accepted as-is; they are not validated against the user
// store.
func (s *Service) Create(ctx context.Context, memberIDs []string) (*Room, error) {
	r := NewRoom(memberIDs)
	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, oops.Code("ROOM_CREATE_FAILED").
			With("operation", "insert room").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "room created",
		"room_id", r.ID.String(),
		"member_count", len(r.MemberIDs))
	return r, nil
}
