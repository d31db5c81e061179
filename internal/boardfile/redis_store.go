package boardfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "board:"

// RedisStore keeps annotation text under prefixed string keys.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and pings it.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for redis board store")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreWithClient(rdb, defaultKeyPrefix, ttl), nil
}

func NewRedisStoreWithClient(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *RedisStore) key(name string) string { return s.prefix + strings.TrimSpace(name) }

func (s *RedisStore) Load(ctx context.Context, name string) (*Document, []Warning, error) {
	raw, err := s.rdb.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	return Parse(bytes.NewReader(raw))
}

func (s *RedisStore) Save(ctx context.Context, name string, doc *Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(name), buf.String(), s.ttl).Err()
}
