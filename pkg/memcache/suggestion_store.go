// Package memcache holds the suggestion cache stores and the logout token denylist.
package memcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"moodlog/internal/models/db_models"
)

// ErrCacheConflict is returned by Put when the stored fingerprint moved since it was read.
var ErrCacheConflict = errors.New("suggestion cache changed concurrently")

type CachedSuggestions struct {
	Bundle      db_models.SuggestionBundle `json:"bundle"`
	Fingerprint int32                      `json:"fingerprint"`
	UpdatedAt   int64                      `json:"updated_at"`
}

// SuggestionStore is keyed by account id.
type SuggestionStore interface {
	// Get returns (nil, nil) when nothing is cached.
	Get(ctx context.Context, accountID uuid.UUID) (*CachedSuggestions, error)

	// Put writes entry only if the stored fingerprint still equals expected
	// (nil expected means "nothing stored"). Otherwise it returns ErrCacheConflict.
	Put(ctx context.Context, accountID uuid.UUID, entry CachedSuggestions, expected *int32) error

	Invalidate(ctx context.Context, accountID uuid.UUID) error
}

type MemorySuggestionStore struct {
	mu   sync.RWMutex
	data map[uuid.UUID]CachedSuggestions
}

func NewMemorySuggestionStore() *MemorySuggestionStore {
	return &MemorySuggestionStore{
		data: make(map[uuid.UUID]CachedSuggestions),
	}
}

func (s *MemorySuggestionStore) Get(_ context.Context, accountID uuid.UUID) (*CachedSuggestions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[accountID]
	if !ok {
		return nil, nil
	}
	e.Bundle = e.Bundle.Normalized()
	return &e, nil
}

func (s *MemorySuggestionStore) Put(_ context.Context, accountID uuid.UUID, entry CachedSuggestions, expected *int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.data[accountID]
	if !fingerprintMatches(ok, current.Fingerprint, expected) {
		return ErrCacheConflict
	}
	if entry.UpdatedAt == 0 {
		entry.UpdatedAt = time.Now().UnixMilli()
	}
	s.data[accountID] = entry
	return nil
}

func (s *MemorySuggestionStore) Invalidate(_ context.Context, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, accountID)
	return nil
}

func fingerprintMatches(present bool, stored int32, expected *int32) bool {
	if expected == nil {
		return !present
	}
	return present && stored == *expected
}
