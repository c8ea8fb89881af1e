package repository

import (
	"context"
	"errors"
	"time"

	authModel "schoolerp_backend/internals/features/users/auth/model"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Blacklist stores revoked access tokens by hash until they expire.
type Blacklist interface {
	Add(ctx context.Context, schoolID uuid.UUID, tokenHash string, expiresAt time.Time) error
	Contains(ctx context.Context, tokenHash string) (bool, error)
	Cleanup(ctx context.Context, now time.Time) (int64, error)
}

/* ====================== REDIS ====================== */

const redisBlacklistPrefix = "auth:blacklist:"

type RedisBlacklist struct {
	Client *redis.Client
}

func (b *RedisBlacklist) Add(ctx context.Context, _ uuid.UUID, tokenHash string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.Client.Set(ctx, redisBlacklistPrefix+tokenHash, 1, ttl).Err()
}

func (b *RedisBlacklist) Contains(ctx context.Context, tokenHash string) (bool, error) {
	n, err := b.Client.Exists(ctx, redisBlacklistPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Cleanup is a no-op: keys carry their own TTL.
func (b *RedisBlacklist) Cleanup(context.Context, time.Time) (int64, error) { return 0, nil }

/* ====================== STORE ====================== */

type StoreBlacklist struct {
	Store resource.Store[authModel.TokenBlacklistModel]
}

func (b *StoreBlacklist) Add(ctx context.Context, schoolID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	now := time.Now().UTC()
	err := b.Store.Insert(ctx, &authModel.TokenBlacklistModel{
		Base:      resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		TokenHash: tokenHash,
		ExpiresAt: expiresAt.UTC(),
	})
	if errors.Is(err, resource.ErrDuplicate) {
		return nil
	}
	return err
}

func (b *StoreBlacklist) Contains(ctx context.Context, tokenHash string) (bool, error) {
	n, err := b.Store.Count(ctx, resource.Query{
		AllTenants: true,
		Where:      map[string]any{"token_hash": tokenHash},
	})
	return n > 0, err
}

func (b *StoreBlacklist) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	return b.Store.DeleteWhere(ctx, resource.Query{
		AllTenants: true,
		Ranges:     []resource.Range{{Column: "expires_at", To: &now}},
	})
}

// NewBlacklist prefers redis when a client is connected.
func NewBlacklist(rdb *redis.Client, be resource.Backend) Blacklist {
	if rdb != nil {
		return &RedisBlacklist{Client: rdb}
	}
	return &StoreBlacklist{Store: resource.StoreFor[authModel.TokenBlacklistModel](be)}
}
