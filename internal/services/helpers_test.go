package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moodlog/internal/models/db_models"
	"moodlog/internal/repositories"
	"moodlog/internal/storage"
	"moodlog/internal/testutil"
	"moodlog/pkg/memcache"
)

const validMoodJSON = `{
  "description": "You seem rested and content after a quiet morning.",
  "short_description": "A calm, content morning",
  "scores": {"anxiety": 2, "depression": 1, "stress": 3, "happiness": 8, "energy": 6, "confidence": 7},
  "mood_category": "positive"
}`

const validSuggestionJSON = `{"activities":["stretch"],"movies":["Amelie"],"songs":["Clair de Lune"],"food":["ramen"]}`

// stubMood is a MoodServiceInterface driven by func fields.
type stubMood struct {
	AnalyzeFn     func(ctx context.Context, in MoodInput) MoodResult
	SuggestionsFn func(ctx context.Context, recent []db_models.Post) (db_models.SuggestionBundle, error)

	suggestionCalls atomic.Int32
}

func (s *stubMood) Analyze(ctx context.Context, in MoodInput) MoodResult {
	if s.AnalyzeFn == nil {
		return FallbackMoodResult()
	}
	return s.AnalyzeFn(ctx, in)
}

func (s *stubMood) GenerateSuggestions(ctx context.Context, recent []db_models.Post) (db_models.SuggestionBundle, error) {
	s.suggestionCalls.Add(1)
	return s.SuggestionsFn(ctx, recent)
}

func sampleBundle(tag string) db_models.SuggestionBundle {
	return db_models.SuggestionBundle{
		Activities: []string{"activity " + tag},
		Movies:     []string{"movie " + tag},
		Songs:      []string{"song " + tag},
		Food:       []string{"food " + tag},
	}
}

// conflictingStore always loses the compare-and-set.
type conflictingStore struct {
	memcache.SuggestionStore
	puts atomic.Int32
}

func (c *conflictingStore) Put(context.Context, uuid.UUID, memcache.CachedSuggestions, *int32) error {
	c.puts.Add(1)
	return memcache.ErrCacheConflict
}

type env struct {
	db          *gorm.DB
	accounts    repositories.AccountRepository
	posts       repositories.PostRepository
	chats       repositories.ChatRepository
	store       *memcache.MemorySuggestionStore
	disk        *storage.DiskStore
	ai          *testutil.StubGenerativeClient
	mood        MoodServiceInterface
	suggestions SuggestionServiceInterface
	postService PostServiceInterface
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	disk, err := storage.NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	e := &env{
		db:       db,
		accounts: repositories.NewAccountRepository(db),
		posts:    repositories.NewPostRepository(db),
		chats:    repositories.NewChatRepository(db),
		store:    memcache.NewMemorySuggestionStore(),
		disk:     disk,
		ai:       &testutil.StubGenerativeClient{},
	}
	log := zap.NewNop()
	e.mood = NewMoodService(e.ai, time.Second, log)
	e.suggestions = NewSuggestionService(e.posts, e.store, e.mood, log)
	e.postService = NewPostService(e.posts, NewTagService(), e.mood, e.suggestions, disk, 1<<20, time.UTC, log)
	return e
}

func (e *env) account(t *testing.T, email string) uuid.UUID {
	t.Helper()
	a := &db_models.Account{Name: "Tester", Email: email, PasswordHash: "x"}
	require.NoError(t, e.accounts.Insert(context.Background(), a))
	return a.ID
}

func (e *env) post(t *testing.T, accountID uuid.UUID, createdAt int64, description string, scores db_models.TraitScores, category db_models.MoodCategory) *db_models.Post {
	t.Helper()
	p := &db_models.Post{
		BaseModel:    db_models.BaseModel{CreatedAt: createdAt},
		AccountID:    accountID,
		Caption:      "caption",
		Tags:         datatypes.NewJSONType([]string{}),
		Scores:       scores,
		MoodCategory: category,
		Description:  description,
	}
	require.NoError(t, e.posts.Insert(context.Background(), p))
	return p
}
