package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the production Store backed by Redis. Prefix scans use SCAN
// with a MATCH pattern so large keyspaces are walked incrementally instead
// of with a blocking KEYS call.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) GetByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var entries []Entry
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// Key expired or was deleted between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
