package cart

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "cart:"

// RedisStore keeps each cart under a single key as a JSON array of items,
// rewritten in full on every mutation.
type RedisStore struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisStore(rdb *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, log: log}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Load(ctx context.Context, cartID string) ([]Item, error) {
	b, err := s.rdb.Get(ctx, keyPrefix+cartID).Bytes()
	if err == redis.Nil {
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		// A corrupt payload is not worth failing a request over; the cart
		// starts over empty.
		if s.log != nil {
			s.log.Warn("corrupt cart payload, treating as empty", zap.String("cart_id", cartID), zap.Error(err))
		}
		return []Item{}, nil
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, cartID string, items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+cartID, b, 0).Err()
}
