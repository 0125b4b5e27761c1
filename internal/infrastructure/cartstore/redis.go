package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists session carts in Redis. Suitable for multi-
// instance deployments where any instance may serve a session.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a new Redis-backed cart store and verifies the
// connection up front.
func NewRedisStore(cfg config.CartConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: "cart:session:",
		ttl:       cfg.RedisTTL,
	}, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "cart:session:",
		ttl:       ttl,
	}
}

// Storage returns the cart slot for one session
func (s *RedisStore) Storage(sessionID string) cart.Storage {
	return &redisSlot{store: s, key: s.keyPrefix + sessionID}
}

// Close releases the underlying Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisSlot struct {
	store *RedisStore
	key   string
}

func (r *redisSlot) Load(ctx context.Context) ([]cart.Line, error) {
	data, err := r.store.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart slot: %w", err)
	}
	return decodeSlot(data)
}

func (r *redisSlot) Save(ctx context.Context, lines []cart.Line) error {
	data, err := encodeSlot(lines)
	if err != nil {
		return err
	}
	if err := r.store.client.Set(ctx, r.key, data, r.store.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart slot: %w", err)
	}
	return nil
}
