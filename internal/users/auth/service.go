// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danuarta/motoria/internal/platform/apperr"
	"github.com/danuarta/motoria/internal/platform/constants"
	"github.com/danuarta/motoria/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements operator authentication use cases.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established operator session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Account               *Account
}

/*
Login validates operator credentials and issues security tokens.

Description: Resolves the account by username or email, performs the bcrypt
comparison, and establishes a refresh session. Lookup and password failures
return the same generic Unauthorized to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	account, err := service.accounts.FindByLogin(context, input.Login)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.establishSession(context, account, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("operator_logged_in",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)
	return session, nil
}

/*
RefreshSession implements refresh token rotation.

Description: Redeems the presented token exactly once (the store removes it
atomically), then issues a fresh access/refresh pair. A replayed token finds
nothing to redeem and fails Unauthorized.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent, ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessions.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByID(context, session.AccountID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found or deactivated")
	}

	rotated, err := service.establishSession(context, account, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_rotated", slog.String("account_id", account.ID))
	return rotated, nil
}

/*
Logout revokes the presented refresh session.

Description: Idempotent; an unknown or already-expired token is a successful
logout.

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.sessions.Delete(context, sec.HashToken(refreshToken))
}

// # Profile

// Me returns the account behind an authenticated request.
func (service *Service) Me(context context.Context, accountID string) (*Account, error) {
	return service.accounts.FindByID(context, accountID)
}

/*
ChangePassword rotates an operator's credentials.

Description: Verifies the current password before storing the new hash. The
presented refresh session is revoked so the client must log in again with
the new password.

Parameters:
  - context: context.Context
  - accountID: string
  - currentPassword, newPassword: string
  - refreshToken: string (Session presented by the client; may be empty)

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, accountID, currentPassword, newPassword, refreshToken string) error {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.accounts.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_password_update_failed: %w", err)
	}

	if refreshToken != "" {
		_ = service.sessions.Delete(context, sec.HashToken(refreshToken))
	}

	service.logger.Info("password_changed", slog.String("account_id", accountID))
	return nil
}

// # Internals

func (service *Service) establishSession(context context.Context, account *Account, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		account.ID, account.Username, string(account.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	session := &Session{
		AccountID: account.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
	}
	if err := service.sessions.Create(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: time.Now().Add(constants.RefreshTokenTTL),
		Account:               account,
	}, nil
}
