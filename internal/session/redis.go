package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping checks connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Create(ctx context.Context, sess Session, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+sess.ID, sess.Username, ttl).Err()
}

// Get fails closed: a redis error is returned, never treated as a hit.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	username, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Username: username}, nil
}

func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
