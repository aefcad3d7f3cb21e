package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const suggestionKeyPrefix = "suggestions:"

type RedisSuggestionStore struct {
	client *redis.Client
}

func NewRedisSuggestionStore(client *redis.Client) *RedisSuggestionStore {
	return &RedisSuggestionStore{client: client}
}

func suggestionKey(accountID uuid.UUID) string {
	return suggestionKeyPrefix + accountID.String()
}

func (s *RedisSuggestionStore) Get(ctx context.Context, accountID uuid.UUID) (*CachedSuggestions, error) {
	return readSuggestions(ctx, s.client, suggestionKey(accountID))
}

func (s *RedisSuggestionStore) Put(ctx context.Context, accountID uuid.UUID, entry CachedSuggestions, expected *int32) error {
	if entry.UpdatedAt == 0 {
		entry.UpdatedAt = time.Now().UnixMilli()
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	key := suggestionKey(accountID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readSuggestions(ctx, tx, key)
		if err != nil {
			return err
		}
		var stored int32
		if current != nil {
			stored = current.Fingerprint
		}
		if !fingerprintMatches(current != nil, stored, expected) {
			return ErrCacheConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrCacheConflict
	}
	return err
}

func (s *RedisSuggestionStore) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	return s.client.Del(ctx, suggestionKey(accountID)).Err()
}

// keyGetter is satisfied by both *redis.Client and *redis.Tx.
type keyGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readSuggestions(ctx context.Context, c keyGetter, key string) (*CachedSuggestions, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry CachedSuggestions
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decoding cached suggestions: %w", err)
	}
	entry.Bundle = entry.Bundle.Normalized()
	return &entry, nil
}
