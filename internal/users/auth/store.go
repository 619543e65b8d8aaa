// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package auth

import "context"

// AccountRepository defines persistence for operator accounts.
type AccountRepository interface {

	/*
		FindByLogin resolves an account by username or email, in that order.

		Returns:
		- *Account: the account
		- error: dberr.ErrNotFound when neither matches
	*/
	FindByLogin(context context.Context, login string) (*Account, error)

	// FindByID returns one account. dberr.ErrNotFound when missing.
	FindByID(context context.Context, id string) (*Account, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(context context.Context, id, passwordHash string) error
}

// SessionRepository defines refresh-session persistence. Implementations key
// sessions by the token digest; the raw token never reaches the store.
type SessionRepository interface {

	// Create stores the session under tokenHash with the store's TTL.
	Create(context context.Context, tokenHash string, session *Session) error

	/*
		Consume returns the session stored under tokenHash and removes it
		atomically, so a refresh token can be redeemed exactly once.

		Returns:
		- *Session: the redeemed session
		- error: apperr.Unauthorized when absent or expired
	*/
	Consume(context context.Context, tokenHash string) (*Session, error)

	// Delete removes a session. Missing sessions are not an error.
	Delete(context context.Context, tokenHash string) error
}
