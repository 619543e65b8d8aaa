// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danuarta/motoria/internal/platform/apperr"
	"github.com/danuarta/motoria/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] on Redis. Sessions
// are JSON values under constants.RedisPrefixSession + tokenHash with the
// refresh TTL, so expiry needs no sweeper.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Set(context, key, payload, constants.RefreshTokenTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

// Consume redeems a session exactly once. GETDEL keeps lookup and removal
// atomic, so two concurrent refreshes with the same token cannot both win.
func (repository *RedisSessionRepository) Consume(context context.Context, tokenHash string) (*Session, error) {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.GetDel(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return session, nil
}

func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_del_failed: %w", err)
	}
	return nil
}
