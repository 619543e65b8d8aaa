// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danuarta/motoria/internal/platform/database/schema"
	"github.com/danuarta/motoria/internal/platform/dberr"
)

// PostgresAccountRepository implements [AccountRepository] on users.account.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (repository *PostgresAccountRepository) FindByLogin(context context.Context, login string) (*Account, error) {
	// Inactive accounts are invisible to login
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE (%s = $1 OR %s = $1) AND %s
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.Role,
		schema.UsersAccount.IsActive, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		schema.UsersAccount.Username, schema.UsersAccount.Email, schema.UsersAccount.IsActive,
	)

	return repository.scanAccount(repository.db.QueryRow(context, query, login), "find_account_by_login")
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s::text = $1 AND %s
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.Role,
		schema.UsersAccount.IsActive, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.IsActive,
	)

	return repository.scanAccount(repository.db.QueryRow(context, query, id), "find_account_by_id")
}

func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW() WHERE %s::text = $1
	`,
		schema.UsersAccount.Table, schema.UsersAccount.PasswordHash,
		schema.UsersAccount.UpdatedAt, schema.UsersAccount.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_account_password")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (repository *PostgresAccountRepository) scanAccount(row rowScanner, action string) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.DisplayName, &account.Role,
		&account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return account, nil
}
