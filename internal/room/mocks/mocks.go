// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

// Package mocks provides testify mocks for the room package interfaces.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/parleyhq/parley/internal/room"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRepository is a mock implementation of room.Repository.
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a MockRepository that asserts its expectations
// at test cleanup.
func NewMockRepository(t testingT) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Create(ctx context.Context, r *room.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) ListByMember(ctx context.Context, userID ulid.ULID, nameFilter string) ([]*room.MemberRoom, error) {
	args := m.Called(ctx, userID, nameFilter)
	if rooms := args.Get(0); rooms != nil {
		return rooms.([]*room.MemberRoom), args.Error(1)
	}
	return nil, args.Error(1)
}

// Compile-time interface check.
var _ room.Repository = (*MockRepository)(nil)
