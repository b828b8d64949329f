package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/admarket/portal/internal/core/domain"
)

// SessionStore keeps session state in Redis.
// Key format: session:<sid> → user id, expiring with the session TTL, so
// termination is a single DEL and is immediately visible to every resolve.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, sid string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sid), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sid string) (int64, error) {
	val, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrSessionNotFound
		}
		return 0, fmt.Errorf("session get: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session get: corrupt value %q: %w", val, err)
	}
	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
