package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sims/sims-backend/internal/config"
)

// SessionRepository keeps login sessions in Redis, keyed by token ID. A token
// is only honoured while its session key exists. Each user also has a set of
// their token IDs so every session of an account can be revoked at once.
type SessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

// Create registers a session that expires together with its token.
func (r *SessionRepository) Create(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	userKey := config.CacheKey.UserSessionsKey(userID)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, config.CacheKey.SessionKey(jti), strconv.FormatInt(userID, 10), ttl)
		pipe.SAdd(ctx, userKey, jti)
		// Tokens share one lifetime, so the newest session bounds the index.
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Exists reports whether the session is still active.
func (r *SessionRepository) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, config.CacheKey.SessionKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

// Delete revokes a session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, jti string, userID int64) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, config.CacheKey.SessionKey(jti))
		pipe.SRem(ctx, config.CacheKey.UserSessionsKey(userID), jti)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser revokes every session of a user and returns how many were
// still active.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	userKey := config.CacheKey.UserSessionsKey(userID)
	jtis, err := r.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list sessions of user %d: %w", userID, err)
	}
	if len(jtis) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(jtis))
	for _, jti := range jtis {
		keys = append(keys, config.CacheKey.SessionKey(jti))
	}

	var deleted *redis.IntCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, keys...)
		pipe.Del(ctx, userKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("revoke sessions of user %d: %w", userID, err)
	}
	return int(deleted.Val()), nil
}
