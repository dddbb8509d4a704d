// Package redis keeps order creation idempotency keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPattern   = "idem:order:create:%s"
	pendingValue = "pending"
)

// releaseScript deletes the key only while it still marks an unfinished
// request, so a completed key is never dropped by a late Release.
var releaseScript = goredis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// IdempotencyStore implements ports.IdempotencyStore. A reserved key holds
// "pending" until Complete replaces it with the order id; both live for ttl.
type IdempotencyStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewIdempotencyStore(client goredis.UniversalClient, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (ports.Reservation, error) {
	redisKey := fmt.Sprintf(keyPattern, key)

	acquired, err := s.client.SetNX(ctx, redisKey, pendingValue, s.ttl).Result()
	if err != nil {
		return ports.Reservation{}, errs.NewPersistenceError("idempotency.reserve", err)
	}
	if acquired {
		return ports.Reservation{Acquired: true}, nil
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, goredis.Nil) || value == pendingValue {
		return ports.Reservation{}, nil
	}
	if err != nil {
		return ports.Reservation{}, errs.NewPersistenceError("idempotency.get", err)
	}

	orderID, err := kernel.UUIDFromString(value)
	if err != nil {
		return ports.Reservation{}, errs.NewPersistenceError("idempotency.decode", err)
	}
	return ports.Reservation{OrderID: &orderID}, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, orderID kernel.UUID) error {
	if err := s.client.Set(ctx, fmt.Sprintf(keyPattern, key), orderID.String(), s.ttl).Err(); err != nil {
		return errs.NewPersistenceError("idempotency.complete", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	err := releaseScript.Run(ctx, s.client, []string{fmt.Sprintf(keyPattern, key)}, pendingValue).Err()
	if err != nil {
		return errs.NewPersistenceError("idempotency.release", err)
	}
	return nil
}
