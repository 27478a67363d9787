package store

import (
	"context"
	"sync"

	"github.com/hws-labs/wetterbot/internal/bot"
)

// MemoryStore is a concurrency-safe in-memory implementation of
// bot.LocationStore, used in development without Redis and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[int64]bot.SavedLocation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[int64]bot.SavedLocation),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (bot.SavedLocation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.data[userID]
	return loc, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, userID int64, loc bot.SavedLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[userID] = loc
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, userID)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
