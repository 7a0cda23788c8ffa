package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
)

// Store resolves bearer tokens to user IDs. Sessions are written by the
// identity service; this backend only reads them and slides their TTL on
// successful use.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewStore creates a new Redis-backed session store
func NewStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Resolve returns the user ID behind a token, refreshing the session TTL.
// An unknown or expired token yields domain.ErrNotFound.
func (s *Store) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	key := sessionKey(token)

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed session value for %s: %w", key, err)
	}

	// Sliding expiration; a failure here only shortens the session
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		s.logger.Warnf("Failed to refresh session TTL for user %s: %v", userID, err)
	}

	return userID, nil
}
