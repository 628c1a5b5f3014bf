package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoCode is returned when no confirmation code is on file for the
// user, either because none was issued, it expired, or it was consumed.
var ErrNoCode = errors.New("no confirmation code on file")

// CodeStore keeps confirmation-code hashes with a bounded lifetime.
type CodeStore interface {
	Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Consume(ctx context.Context, userID string) error
}

// RedisCodeStore stores code hashes under per-user keys. Redis owns the
// expiry via key TTL, so an expired code simply stops existing.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(addr, password string) (*RedisCodeStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCodeStore{client: rdb}, nil
}

func codeKey(userID string) string {
	return fmt.Sprintf("confirm:user:%s", userID)
}

// Save overwrites any outstanding code for the user; re-requesting a code
// invalidates the previous one.
func (s *RedisCodeStore) Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	return s.client.Set(ctx, codeKey(userID), codeHash, ttl).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, userID string) (string, error) {
	hash, err := s.client.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCode
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// Consume deletes the stored hash so the code cannot be exchanged twice.
func (s *RedisCodeStore) Consume(ctx context.Context, userID string) error {
	return s.client.Del(ctx, codeKey(userID)).Err()
}

func (s *RedisCodeStore) Close() error {
	return s.client.Close()
}
