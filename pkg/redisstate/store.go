// Package redisstate stores console page state in Redis.
package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-billing-console/components/console"
)

const (
	keyPrefix = "console:state:"

	// DefaultTTL bounds how long an idle viewer's state survives.
	DefaultTTL = 12 * time.Hour
)

// Store implements console.StateStore on top of a Redis client.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ console.StateStore = (*Store)(nil)

// New connects to redisURL and verifies the connection.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Load returns the stored state or a fresh one.
func (s *Store) Load(ctx context.Context, viewer console.ViewerContext, page string) (console.PageState, error) {
	data, err := s.client.Get(ctx, key(viewer, page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return console.NewPageState(page), nil
	}
	if err != nil {
		return console.PageState{}, fmt.Errorf("redis get failed: %w", err)
	}
	var state console.PageState
	if err := json.Unmarshal(data, &state); err != nil {
		return console.PageState{}, fmt.Errorf("decode page state: %w", err)
	}
	state.Page = page
	state.Normalize()
	return state, nil
}

// Save stores state under its page and refreshes the TTL.
func (s *Store) Save(ctx context.Context, viewer console.ViewerContext, state console.PageState) error {
	state.Normalize()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode page state: %w", err)
	}
	if err := s.client.Set(ctx, key(viewer, state.Page), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Clear drops the stored state.
func (s *Store) Clear(ctx context.Context, viewer console.ViewerContext, page string) error {
	if err := s.client.Del(ctx, key(viewer, page)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func key(viewer console.ViewerContext, page string) string {
	return keyPrefix + console.StateKey(viewer, page)
}
