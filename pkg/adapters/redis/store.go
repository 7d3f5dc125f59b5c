package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/tper/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces scratchpad keys.
const DefaultPrefix = "tper:scratch:"

// Store implements ports.Scratchpad using Redis.
// Values live in a hash per workflow; a companion list keeps first-write order.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets an expiration on every workflow's keys.
// It only matters for processes that die before Cleanup; Purge removes keys regardless.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromURL creates a store from a redis:// URL.
func NewFromURL(url string, opts ...Option) (*Store, error) {
	parsed, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(parsed), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) valuesKey(workflowID string) string {
	return s.prefix + workflowID
}

func (s *Store) orderKey(workflowID string) string {
	return s.prefix + workflowID + ":keys"
}

// Put writes an artifact for the workflow.
func (s *Store) Put(ctx context.Context, workflowID, key, value string) error {
	created, err := s.client.HSetNX(ctx, s.valuesKey(workflowID), key, value).Result()
	if err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	pipe := s.client.Pipeline()
	if created {
		pipe.RPush(ctx, s.orderKey(workflowID), key)
	} else {
		pipe.HSet(ctx, s.valuesKey(workflowID), key, value)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, s.valuesKey(workflowID), s.ttl)
		pipe.Expire(ctx, s.orderKey(workflowID), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves an artifact.
func (s *Store) Get(ctx context.Context, workflowID, key string) (string, error) {
	val, err := s.client.HGet(ctx, s.valuesKey(workflowID), key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrArtifactNotFound
		}
		return "", fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// List returns the keys of a workflow in first-write order.
func (s *Store) List(ctx context.Context, workflowID string) ([]string, error) {
	keys, err := s.client.LRange(ctx, s.orderKey(workflowID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	return keys, nil
}

// Purge removes all artifacts of the workflow.
func (s *Store) Purge(ctx context.Context, workflowID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.valuesKey(workflowID))
	pipe.Del(ctx, s.orderKey(workflowID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to purge artifacts: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
