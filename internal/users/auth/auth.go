// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

/*
Package auth implements back-office identity for the dealership CMS.

Accounts are provisioned by administrators (there is no public sign-up) and
authenticate with username or email plus password. Access tokens are
short-lived RS256 JWTs; refresh sessions live in Redis under a hashed token
key and rotate on every refresh.

# Architecture

  - Service: Login, rotation, logout, profile, password change.
  - AccountRepository: PostgreSQL account storage.
  - SessionRepository: Redis refresh-session storage with TTL eviction.
*/
package auth

import (
	"time"

	"github.com/danuarta/motoria/internal/platform/sec"
)

// # Domain Entities

// Account is a back-office operator of the CMS.
type Account struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialized
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is one active refresh-token session. It is stored in Redis keyed
// by the token digest, so expiry is enforced by the store itself.
type Session struct {
	AccountID string    `json:"account_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// # Token Parameters

const (
	// RefreshTokenLength is the entropy byte length of a refresh token.
	RefreshTokenLength = 32
)

// # Field Identifiers

const (
	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
)
