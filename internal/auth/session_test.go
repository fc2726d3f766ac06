// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package auth_test

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/auth"
)

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	t.Run("token is hex of 32 random bytes", func(t *testing.T) {
		raw, err := hex.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, raw, auth.SessionTokenBytes)
	})

	t.Run("hash matches token", func(t *testing.T) {
		assert.Equal(t, auth.HashSessionToken(token), hash)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		token2, _, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		assert.NotEqual(t, token, token2)
	})
}

func TestVerifySessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	ok, err := auth.VerifySessionToken(token, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifySessionToken("deadbeef", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.VerifySessionToken("", hash)
	require.Error(t, err)

	_, err = auth.VerifySessionToken(token, "")
	require.Error(t, err)
}

func TestNewSession(t *testing.T) {
	user, err := auth.NewUser("Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour)
	session, err := auth.NewSession(user, "tokenhash", expires)
	require.NoError(t, err)

	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, user.Name, session.Name)
	assert.Equal(t, user.Email, session.Email)
	assert.Equal(t, "tokenhash", session.TokenHash)
	assert.Equal(t, expires, session.ExpiresAt)
	assert.NotEqual(t, session.ID, session.UserID)
}

func TestNewSession_Invalid(t *testing.T) {
	user, err := auth.NewUser("Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)

	t.Run("nil user", func(t *testing.T) {
		_, err := auth.NewSession(nil, "tokenhash", time.Now().Add(time.Hour))
		require.Error(t, err)
	})

	t.Run("empty token hash", func(t *testing.T) {
		_, err := auth.NewSession(user, "", time.Now().Add(time.Hour))
		require.Error(t, err)
	})
}

func TestSession_IsExpired(t *testing.T) {
	user, err := auth.NewUser("Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)

	session, err := auth.NewSession(user, "tokenhash", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.False(t, session.IsExpired())
	assert.True(t, session.IsExpiredAt(session.ExpiresAt.Add(time.Second)))
	assert.False(t, session.IsExpiredAt(session.ExpiresAt.Add(-time.Second)))
}
