// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/auth"
	"github.com/parleyhq/parley/pkg/errutil"
)

func testSession(t *testing.T) *auth.Session {
	t.Helper()
	user, err := auth.NewUser("Ada", "ada@example.com", "hash")
	require.NoError(t, err)
	session, err := auth.NewSession(user, "tokenhash", time.Now().Add(time.Hour))
	require.NoError(t, err)
	return session
}

func TestSessionRepository_Create(t *testing.T) {
	session := testSession(t)

	t.Run("successful insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO web_sessions`).
			WithArgs(session.ID.String(), session.UserID.String(), session.Name,
				session.Email, session.ImageURL, session.TokenHash,
				session.ExpiresAt, session.CreatedAt, session.LastSeenAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewSessionRepository(mock)
		require.NoError(t, repo.Create(context.Background(), session))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO web_sessions`).
			WithArgs(session.ID.String(), session.UserID.String(), session.Name,
				session.Email, session.ImageURL, session.TokenHash,
				session.ExpiresAt, session.CreatedAt, session.LastSeenAt).
			WillReturnError(errors.New("connection refused"))

		repo := NewSessionRepository(mock)
		err = repo.Create(context.Background(), session)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_CREATE_FAILED")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_GetByTokenHash(t *testing.T) {
	columns := []string{"id", "user_id", "name", "email", "image_url", "token_hash", "expires_at", "created_at", "last_seen_at"}
	session := testSession(t)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows(columns).AddRow(
			session.ID.String(), session.UserID.String(), session.Name,
			session.Email, session.ImageURL, session.TokenHash,
			session.ExpiresAt, session.CreatedAt, session.LastSeenAt)
		mock.ExpectQuery(`SELECT .+ FROM web_sessions`).
			WithArgs("tokenhash").
			WillReturnRows(rows)

		repo := NewSessionRepository(mock)
		got, err := repo.GetByTokenHash(context.Background(), "tokenhash")
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
		assert.Equal(t, session.UserID, got.UserID)
		assert.Equal(t, session.Email, got.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM web_sessions`).
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows(columns))

		repo := NewSessionRepository(mock)
		_, err = repo.GetByTokenHash(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_UpdateLastSeen(t *testing.T) {
	id := ulid.Make()
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE web_sessions SET last_seen_at`).
		WithArgs(id.String(), now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewSessionRepository(mock)
	require.NoError(t, repo.UpdateLastSeen(context.Background(), id, now))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_DeleteByTokenHash(t *testing.T) {
	t.Run("deletes existing session", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM web_sessions WHERE token_hash`).
			WithArgs("tokenhash").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewSessionRepository(mock)
		require.NoError(t, repo.DeleteByTokenHash(context.Background(), "tokenhash"))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent session succeeds", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM web_sessions WHERE token_hash`).
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewSessionRepository(mock)
		require.NoError(t, repo.DeleteByTokenHash(context.Background(), "missing"))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM web_sessions WHERE token_hash`).
			WithArgs("tokenhash").
			WillReturnError(errors.New("connection refused"))

		repo := NewSessionRepository(mock)
		err = repo.DeleteByTokenHash(context.Background(), "tokenhash")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_DELETE_FAILED")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM web_sessions WHERE expires_at`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	repo := NewSessionRepository(mock)
	n, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
