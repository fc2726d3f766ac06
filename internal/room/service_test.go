// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package room_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/auth"
	"github.com/parleyhq/parley/internal/room"
	"github.com/parleyhq/parley/internal/room/mocks"
	"github.com/parleyhq/parley/pkg/errutil"
)

func newUser(t *testing.T, name string) *auth.User {
	t.Helper()
	u, err := auth.NewUser(name, name+"@example.com", "hash")
	require.NoError(t, err)
	return u
}

func TestService_ListForUser(t *testing.T) {
	ctx := context.Background()
	userID := ulid.Make()

	t.Run("returns populated rooms", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		ada := newUser(t, "Ada")
		bob := newUser(t, "Bob")
		r1 := room.NewRoom([]string{ada.ID.String(), bob.ID.String()})

		repo.On("ListByMember", ctx, userID, "").
			Return([]*room.MemberRoom{{Room: r1, Members: []*auth.User{ada, bob}}}, nil).Once()

		got, err := svc.ListForUser(ctx, userID, "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, r1.ID, got[0].Room.ID)
		assert.Len(t, got[0].Members, 2)
	})

	t.Run("drops rooms the filter empties", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		ada := newUser(t, "Ada")
		matching := room.NewRoom([]string{ada.ID.String()})
		emptied := room.NewRoom([]string{ulid.Make().String()})

		repo.On("ListByMember", ctx, userID, "ada").
			Return([]*room.MemberRoom{
				{Room: matching, Members: []*auth.User{ada}},
				{Room: emptied, Members: nil},
			}, nil).Once()

		got, err := svc.ListForUser(ctx, userID, "ada")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, matching.ID, got[0].Room.ID)
	})

	t.Run("no rooms", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		repo.On("ListByMember", ctx, userID, "").Return(nil, nil).Once()

		got, err := svc.ListForUser(ctx, userID, "")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got, "empty list, not null")
	})

	t.Run("zero user ID", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		_, err = svc.ListForUser(ctx, ulid.ULID{}, "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "ROOM_INVALID_USER")
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		repo.On("ListByMember", ctx, userID, "").
			Return(nil, oops.Errorf("connection refused")).Once()

		_, err = svc.ListForUser(ctx, userID, "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "ROOM_LIST_FAILED")
		errutil.AssertErrorContext(t, err, "user_id", userID.String())
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists member references as given", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		members := []string{"someone", "not-even-a-ulid"}

		var created *room.Room
		repo.On("Create", ctx, mock.AnythingOfType("*room.Room")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*room.Room)
			}).
			Return(nil).Once()

		r, err := svc.Create(ctx, members)
		require.NoError(t, err)
		assert.Same(t, created, r)
		assert.Equal(t, members, r.MemberIDs)
		assert.False(t, r.CreatedAt.IsZero())
	})

	t.Run("empty member list", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		repo.On("Create", ctx, mock.AnythingOfType("*room.Room")).Return(nil).Once()

		r, err := svc.Create(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, r.MemberIDs)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc, err := room.NewService(repo)
		require.NoError(t, err)

		repo.On("Create", ctx, mock.AnythingOfType("*room.Room")).
			Return(oops.Errorf("connection refused")).Once()

		_, err = svc.Create(ctx, []string{"u1"})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "ROOM_CREATE_FAILED")
	})
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := room.NewService(nil)
	require.Error(t, err)

	repo := mocks.NewMockRepository(t)
	_, err = room.NewServiceWithLogger(repo, nil)
	require.Error(t, err)
}
