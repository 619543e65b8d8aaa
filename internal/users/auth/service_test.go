// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarta/motoria/internal/platform/apperr"
	"github.com/danuarta/motoria/internal/platform/sec"
)

// # Test Doubles

type fakeAccounts struct {
	byID map[string]*Account
}

func (f *fakeAccounts) FindByLogin(_ context.Context, login string) (*Account, error) {
	for _, account := range f.byID {
		if account.Username == login || account.Email == login {
			return account, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*Account, error) {
	if account, ok := f.byID[id]; ok {
		return account, nil
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, id, passwordHash string) error {
	account, ok := f.byID[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.PasswordHash = passwordHash
	return nil
}

// fakeSessions redeems each stored token hash at most once, like the Redis
// GETDEL-backed implementation.
type fakeSessions struct {
	sessions map[string]*Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*Session)}
}

func (f *fakeSessions) Create(_ context.Context, tokenHash string, session *Session) error {
	f.sessions[tokenHash] = session
	return nil
}

func (f *fakeSessions) Consume(_ context.Context, tokenHash string) (*Session, error) {
	session, ok := f.sessions[tokenHash]
	if !ok {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}
	delete(f.sessions, tokenHash)
	return session, nil
}

func (f *fakeSessions) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

type fakeTokens struct {
	issued int
}

func (f *fakeTokens) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	f.issued++
	return "access-token-for-" + userID, nil
}

func testFixture(t *testing.T, password string) (*Service, *fakeAccounts, *fakeSessions) {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	accounts := &fakeAccounts{byID: map[string]*Account{
		"acc-1": {
			ID:           "acc-1",
			Username:     "editor",
			Email:        "editor@motoria.dev",
			PasswordHash: hash,
			Role:         sec.RoleEditor,
			IsActive:     true,
		},
	}}
	sessions := newFakeSessions()
	service := NewService(accounts, sessions, &fakeTokens{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, accounts, sessions
}

// # Login

func TestLogin(t *testing.T) {
	ctx := context.Background()
	service, _, sessions := testFixture(t, "correct-horse-battery")

	t.Run("valid_credentials_establish_a_session", func(t *testing.T) {
		session, err := service.Login(ctx, LoginInput{Login: "editor", Password: "correct-horse-battery"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, "acc-1", session.Account.ID)
		assert.Len(t, sessions.sessions, 1)
	})

	t.Run("email_works_as_login", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Login: "editor@motoria.dev", Password: "correct-horse-battery"})
		assert.NoError(t, err)
	})

	// Unknown account and wrong password are indistinguishable to the caller
	t.Run("unknown_account_is_generic_unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Login: "ghost", Password: "correct-horse-battery"})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("wrong_password_is_generic_unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Login: "editor", Password: "wrong"})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

// # Refresh Rotation

/*
TestRefreshSessionRotation verifies that a refresh token is redeemable exactly
once: rotation invalidates the presented token, so a replay fails.
*/
func TestRefreshSessionRotation(t *testing.T) {
	ctx := context.Background()
	service, _, _ := testFixture(t, "correct-horse-battery")

	session, err := service.Login(ctx, LoginInput{Login: "editor", Password: "correct-horse-battery"})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(ctx, session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replaying the consumed token fails
	_, err = service.RefreshSession(ctx, session.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token is still live
	_, err = service.RefreshSession(ctx, rotated.RefreshToken, "", "")
	assert.NoError(t, err)
}

func TestRefreshSessionDeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	service, accounts, _ := testFixture(t, "correct-horse-battery")

	session, err := service.Login(ctx, LoginInput{Login: "editor", Password: "correct-horse-battery"})
	require.NoError(t, err)

	// Account disappears between login and refresh
	delete(accounts.byID, "acc-1")

	_, err = service.RefreshSession(ctx, session.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

// # Logout

func TestLogout(t *testing.T) {
	ctx := context.Background()
	service, _, sessions := testFixture(t, "correct-horse-battery")

	session, err := service.Login(ctx, LoginInput{Login: "editor", Password: "correct-horse-battery"})
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 1)

	require.NoError(t, service.Logout(ctx, session.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// Logging out an already-revoked token is still a success
	assert.NoError(t, service.Logout(ctx, session.RefreshToken))
}

// # Change Password

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates_hash_and_revokes_session", func(t *testing.T) {
		service, accounts, sessions := testFixture(t, "correct-horse-battery")
		session, err := service.Login(ctx, LoginInput{Login: "editor", Password: "correct-horse-battery"})
		require.NoError(t, err)

		err = service.ChangePassword(ctx, "acc-1", "correct-horse-battery", "a-brand-new-secret", session.RefreshToken)
		require.NoError(t, err)
		assert.Empty(t, sessions.sessions)
		assert.True(t, sec.CheckPasswordHash("a-brand-new-secret", accounts.byID["acc-1"].PasswordHash))
	})

	t.Run("wrong_current_password_is_rejected", func(t *testing.T) {
		service, accounts, _ := testFixture(t, "correct-horse-battery")
		err := service.ChangePassword(ctx, "acc-1", "wrong", "a-brand-new-secret", "")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.True(t, sec.CheckPasswordHash("correct-horse-battery", accounts.byID["acc-1"].PasswordHash))
	})
}
