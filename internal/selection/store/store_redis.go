package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSelectionKeyPrefix = "selection:"

// RedisStore keeps each selection as a Redis set with an optional TTL.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore uses client for storage. A zero ttl keeps selections until
// they are cleared.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save replaces the set atomically.
func (s *RedisStore) Save(ctx context.Context, key string, ids []string) error {
	k := selectionKey(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		if len(ids) == 0 {
			return nil
		}
		members := make([]any, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		pipe.SAdd(ctx, k, members...)
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// Load returns the saved ids sorted.
func (s *RedisStore) Load(ctx context.Context, key string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, selectionKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	slices.Sort(ids)
	return ids, nil
}

func selectionKey(key string) string {
	return redisSelectionKeyPrefix + key
}
