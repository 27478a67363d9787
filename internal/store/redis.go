// Package store persists per-user saved locations in a key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hws-labs/wetterbot/internal/bot"
)

// ErrUnavailable is returned when the underlying store cannot be
// reached or a stored record cannot be decoded. Absence of a record is
// never an error.
var ErrUnavailable = errors.New("location store unavailable")

// locationKey derives the deterministic per-user key.
func locationKey(userID int64) string {
	return fmt.Sprintf("user:%d:location", userID)
}

// decodeLocation parses a stored record. Corrupt or foreign data is an
// ErrUnavailable-class condition, never a crash.
func decodeLocation(raw []byte) (bot.SavedLocation, error) {
	var loc bot.SavedLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return bot.SavedLocation{}, fmt.Errorf("%w: corrupt record: %v", ErrUnavailable, err)
	}
	return loc, nil
}

// RedisStore implements bot.LocationStore on Redis. Records have no
// expiry; they persist until explicitly deleted or overwritten. The
// client is safe for concurrent use; concurrent writes to the same key
// resolve last-write-wins.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (bot.SavedLocation, bool, error) {
	raw, err := s.client.Get(ctx, locationKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return bot.SavedLocation{}, false, nil
	}
	if err != nil {
		return bot.SavedLocation{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	loc, err := decodeLocation(raw)
	if err != nil {
		return bot.SavedLocation{}, false, err
	}
	return loc, true, nil
}

// Set writes the full record in a single call; there is no partial
// update. Overwriting with the same record is idempotent.
func (s *RedisStore) Set(ctx context.Context, userID int64, loc bot.SavedLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := s.client.Set(ctx, locationKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes the record. Deleting an absent record is a no-op
// success; callers that need to distinguish must Get first.
func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, locationKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping reports store reachability for the health probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
