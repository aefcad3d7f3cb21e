package memcache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog/internal/models/db_models"
)

func int32Ptr(v int32) *int32 { return &v }

func sampleEntry(fp int32) CachedSuggestions {
	return CachedSuggestions{
		Bundle: db_models.SuggestionBundle{
			Activities: []string{"walk"},
			Movies:     []string{"Amelie"},
			Songs:      []string{"Here Comes the Sun"},
			Food:       []string{"soup"},
		},
		Fingerprint: fp,
	}
}

func newRedisStore(t *testing.T) (*RedisSuggestionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSuggestionStore(client), mr
}

func storeContract(t *testing.T, store SuggestionStore) {
	ctx := context.Background()
	accountID := uuid.New()

	got, err := store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// first write expects nothing stored
	require.NoError(t, store.Put(ctx, accountID, sampleEntry(1), nil))

	got, err = store.Get(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int32(1), got.Fingerprint)
	assert.Equal(t, []string{"walk"}, got.Bundle.Activities)
	assert.NotZero(t, got.UpdatedAt)

	// a writer that read "nothing stored" lost the race
	assert.ErrorIs(t, store.Put(ctx, accountID, sampleEntry(2), nil), ErrCacheConflict)
	// a writer that read a stale fingerprint lost too
	assert.ErrorIs(t, store.Put(ctx, accountID, sampleEntry(2), int32Ptr(99)), ErrCacheConflict)

	require.NoError(t, store.Put(ctx, accountID, sampleEntry(2), int32Ptr(1)))
	got, err = store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got.Fingerprint)

	require.NoError(t, store.Invalidate(ctx, accountID))
	got, err = store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// invalidating an empty slot is fine
	require.NoError(t, store.Invalidate(ctx, uuid.New()))
}

func TestMemorySuggestionStore(t *testing.T) {
	storeContract(t, NewMemorySuggestionStore())
}

func TestRedisSuggestionStore(t *testing.T) {
	store, _ := newRedisStore(t)
	storeContract(t, store)
}

func TestRedisSuggestionStore_AccountsAreIsolated(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, store.Put(ctx, a, sampleEntry(1), nil))
	require.NoError(t, store.Put(ctx, b, sampleEntry(7), nil))

	assert.True(t, mr.Exists(suggestionKey(a)))
	require.NoError(t, store.Invalidate(ctx, a))
	assert.False(t, mr.Exists(suggestionKey(a)))

	got, err := store.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int32(7), got.Fingerprint)
}

func TestRedisSuggestionStore_NormalizesMissingLists(t *testing.T) {
	store, mr := newRedisStore(t)
	accountID := uuid.New()
	require.NoError(t, mr.Set(suggestionKey(accountID), `{"bundle":{"activities":["x"]},"fingerprint":3}`))

	got, err := store.Get(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Bundle.Movies)
	assert.Equal(t, []string{"x"}, got.Bundle.Activities)
}
