// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

// Package postgres implements the room repository on PostgreSQL via pgx.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/parleyhq/parley/internal/auth"
	"github.com/parleyhq/parley/internal/room"
)

// DB is the subset of pgxpool.Pool the repository uses. Declared as an
// interface so tests can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements room.Repository using PostgreSQL. Member ids live
// in a TEXT[] column on the rooms table; there is no foreign key, matching
// the unvalidated-reference semantics of room membership.
type Repository struct {
	db DB
}

// NewRepository creates a new Repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new room.
func (r *Repository) Create(ctx context.Context, rm *room.Room) error {
	memberIDs := rm.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (id, member_ids, created_at)
		VALUES ($1, $2, $3)
	`,
		rm.ID.String(),
		memberIDs,
		rm.CreatedAt,
	)
	if err != nil {
		return oops.Code("ROOM_CREATE_FAILED").
			With("operation", "insert room").
			With("id", rm.ID.String()).
			Wrap(err)
	}
	return nil
}

// ListByMember returns all rooms containing userID, with members expanded
// to user records filtered by nameFilter. The filter is a case-insensitive
// POSIX regex; an empty filter matches every member. Dangling member
// references (ids with no user record) are silently skipped.
func (r *Repository) ListByMember(ctx context.Context, userID ulid.ULID, nameFilter string) ([]*room.MemberRoom, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, member_ids, created_at
		FROM rooms
		WHERE $1 = ANY(member_ids)
		ORDER BY created_at
	`, userID.String())
	if err != nil {
		return nil, oops.Code("ROOM_LIST_FAILED").
			With("operation", "list rooms by member").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var result []*room.MemberRoom
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, oops.Code("ROOM_SCAN_FAILED").
				With("operation", "scan room row").
				Wrap(err)
		}
		result = append(result, &room.MemberRoom{Room: rm})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ROOM_ROWS_ERROR").
			With("operation", "iterate room rows").
			Wrap(err)
	}

	for _, mr := range result {
		members, err := r.membersMatching(ctx, mr.Room.MemberIDs, nameFilter)
		if err != nil {
			return nil, err
		}
		mr.Members = members
	}

	return result, nil
}

// membersMatching expands member ids to user records whose name matches the
// filter.
func (r *Repository) membersMatching(ctx context.Context, memberIDs []string, nameFilter string) ([]*auth.User, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, password_hash, image_url, created_at
		FROM users
		WHERE id = ANY($1) AND name ~* $2
	`, memberIDs, nameFilter)
	if err != nil {
		return nil, oops.Code("ROOM_MEMBERS_FAILED").
			With("operation", "expand room members").
			Wrap(err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, oops.Code("ROOM_MEMBER_SCAN_FAILED").
				With("operation", "scan member row").
				Wrap(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ROOM_MEMBER_ROWS_ERROR").
			With("operation", "iterate member rows").
			Wrap(err)
	}
	return users, nil
}

// scanRoom scans a single row into a Room.
func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		idStr     string
		memberIDs []string
		createdAt time.Time
	)
	if err := row.Scan(&idStr, &memberIDs, &createdAt); err != nil {
		return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("ROOM_INVALID_ID").
			With("operation", "parse room id").
			With("id", idStr).
			Wrap(err)
	}

	return &room.Room{
		ID:        id,
		MemberIDs: memberIDs,
		CreatedAt: createdAt,
	}, nil
}

// scanUser scans a single row into a User.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr        string
		name         string
		email        string
		passwordHash string
		imageURL     *string
		createdAt    time.Time
	)
	if err := row.Scan(&idStr, &name, &email, &passwordHash, &imageURL, &createdAt); err != nil {
		return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("ROOM_MEMBER_INVALID_ID").
			With("operation", "parse member id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		ImageURL:     imageURL,
		CreatedAt:    createdAt,
	}, nil
}

// Compile-time interface check.
var _ room.Repository = (*Repository)(nil)
