package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalog-storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:session:"

type redisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis returns a Store backed by Redis. Each session is one JSON value
// written with the ttl as expiry.
func NewRedis(client redis.UniversalClient, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Load(ctx context.Context, id string) ([]domain.CartLine, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session load %s: %w", id, err)
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("session decode %s: %w", id, err)
	}
	return lines, nil
}

func (r *redisStore) Save(ctx context.Context, id string, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return r.Delete(ctx, id)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("session encode %s: %w", id, err)
	}
	if err := r.client.Set(ctx, keyPrefix+id, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("session save %s: %w", id, err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete %s: %w", id, err)
	}
	return nil
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
