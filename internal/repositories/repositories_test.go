package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moodlog/internal/models/db_models"
	"moodlog/internal/testutil"
	"moodlog/pkg/memcache"
)

func seedAccount(t *testing.T, db *gorm.DB, email string) *db_models.Account {
	t.Helper()
	account := &db_models.Account{Name: "Test", Email: email, PasswordHash: "x"}
	require.NoError(t, NewAccountRepository(db).Insert(context.Background(), account))
	return account
}

func seedPost(t *testing.T, db *gorm.DB, accountID uuid.UUID, createdAt int64, scores db_models.TraitScores, category db_models.MoodCategory) *db_models.Post {
	t.Helper()
	post := &db_models.Post{
		BaseModel:    db_models.BaseModel{CreatedAt: createdAt},
		AccountID:    accountID,
		Caption:      "caption",
		Tags:         datatypes.NewJSONType([]string{"calm"}),
		Scores:       scores,
		MoodCategory: category,
		Description:  "description",
	}
	require.NoError(t, NewPostRepository(db).Insert(context.Background(), post))
	return post
}

func TestAccountRepository_InsertDuplicateEmail(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seedAccount(t, db, "dup@example.com")

	err := NewAccountRepository(db).Insert(context.Background(), &db_models.Account{Name: "Dup", Email: "dup@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAccountRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := seedAccount(t, db, "a@example.com")
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.NotZero(t, account.CreatedAt)

	byEmail, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, account.ID, byEmail.ID)
	assert.Nil(t, byEmail.ContextFingerprint)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Insert(ctx, &db_models.Account{Name: "Dup", Email: "a@example.com", PasswordHash: "y"})
	assert.Error(t, err)

	require.NoError(t, repo.UpdateAvatar(ctx, account.ID, "http://img/a.png", "avatars/a.png"))
	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://img/a.png", byID.AvatarURL)
	assert.Equal(t, "avatars/a.png", byID.AvatarKey)

	assert.ErrorIs(t, repo.UpdateAvatar(ctx, uuid.New(), "u", "k"), gorm.ErrRecordNotFound)
}

func TestPostRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	owner := seedAccount(t, db, "owner@example.com")
	other := seedAccount(t, db, "other@example.com")

	oldest := seedPost(t, db, owner.ID, 1000, db_models.TraitScores{Happiness: 1}, db_models.MoodNeutral)
	middle := seedPost(t, db, owner.ID, 2000, db_models.TraitScores{Happiness: 2}, db_models.MoodNeutral)
	newest := seedPost(t, db, owner.ID, 3000, db_models.TraitScores{Happiness: 3}, db_models.MoodPositive)
	foreign := seedPost(t, db, other.ID, 4000, db_models.TraitScores{}, db_models.MoodNeutral)

	all, err := repo.ListByAccount(ctx, owner.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, []string{"calm"}, all[0].Tags.Data())
	assert.Equal(t, 3, all[0].Scores.Happiness)

	recent, err := repo.ListByAccount(ctx, owner.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	got, err := repo.FindByID(ctx, owner.ID, newest.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, db_models.MoodPositive, got.MoodCategory)

	got, err = repo.FindByID(ctx, owner.ID, foreign.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	bundle := db_models.SuggestionBundle{Activities: []string{"run"}, Movies: []string{"m"}, Songs: []string{"s"}, Food: []string{"f"}}
	require.NoError(t, repo.UpdateSuggestions(ctx, newest.ID, bundle))
	got, err = repo.FindByID(ctx, owner.ID, newest.ID)
	require.NoError(t, err)
	assert.True(t, got.HasSuggestions)
	assert.Equal(t, bundle, got.Suggestions.Data())

	deleted, err := repo.Delete(ctx, owner.ID, foreign.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	stillThere, err := repo.FindByID(ctx, other.ID, foreign.ID)
	require.NoError(t, err)
	assert.NotNil(t, stillThere)

	deleted, err = repo.Delete(ctx, owner.ID, oldest.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	all, err = repo.ListByAccount(ctx, owner.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestChatRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()
	account := seedAccount(t, db, "chat@example.com")

	var ids []uuid.UUID
	for i := 1; i <= 5; i++ {
		msg := &db_models.ChatMessage{
			BaseModel: db_models.BaseModel{CreatedAt: int64(i * 1000)},
			AccountID: account.ID,
			Role:      db_models.ChatRoleUser,
			Content:   string(rune('a' + i - 1)),
		}
		require.NoError(t, repo.Insert(ctx, msg))
		ids = append(ids, msg.ID)
	}

	latest, err := repo.Recent(ctx, account.ID, nil, 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, "c", latest[0].Content)
	assert.Equal(t, "e", latest[2].Content)

	excluding, err := repo.Recent(ctx, account.ID, &ids[4], 3)
	require.NoError(t, err)
	require.Len(t, excluding, 3)
	assert.Equal(t, "b", excluding[0].Content)
	assert.Equal(t, "d", excluding[2].Content)

	n, err := repo.DeleteByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	latest, err = repo.Recent(ctx, account.ID, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestAnalyticsRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()
	account := seedAccount(t, db, "stats@example.com")

	n, err := repo.CountPosts(ctx, account.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	avg, err := repo.TraitAverages(ctx, account.ID)
	require.NoError(t, err)
	assert.Zero(t, avg.Happiness)

	seedPost(t, db, account.ID, 1, db_models.TraitScores{Happiness: 8, Stress: 1}, db_models.MoodPositive)
	seedPost(t, db, account.ID, 2, db_models.TraitScores{Happiness: 6, Stress: 2}, db_models.MoodPositive)
	seedPost(t, db, account.ID, 3, db_models.TraitScores{Happiness: 4, Stress: 2}, db_models.MoodNegative)

	n, err = repo.CountPosts(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	avg, err = repo.TraitAverages(ctx, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, avg.Happiness, 1e-9)
	assert.InDelta(t, 5.0/3.0, avg.Stress, 1e-9)

	rows, err := repo.CountByCategory(ctx, account.ID)
	require.NoError(t, err)
	counts := map[db_models.MoodCategory]int64{}
	for _, r := range rows {
		counts[r.Category] = r.Count
	}
	assert.Equal(t, map[db_models.MoodCategory]int64{db_models.MoodPositive: 2, db_models.MoodNegative: 1}, counts)
}

func TestAnalyticsRepository_DistinctDescriptions(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()
	account := seedAccount(t, db, "words@example.com")
	other := seedAccount(t, db, "someone@example.com")

	for i, description := range []string{"a", "b", "a", "", "c", "b"} {
		p := seedPost(t, db, account.ID, int64(100+i), db_models.TraitScores{}, db_models.MoodNeutral)
		require.NoError(t, db.Model(p).Update("description", description).Error)
	}
	seedPost(t, db, other.ID, 999, db_models.TraitScores{}, db_models.MoodNeutral)

	got, err := repo.DistinctDescriptions(ctx, account.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, got)

	got, err = repo.DistinctDescriptions(ctx, account.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestAccountSuggestionStore(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	store := NewAccountSuggestionStore(db)
	ctx := context.Background()
	account := seedAccount(t, db, "cache@example.com")

	got, err := store.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	bundle := db_models.SuggestionBundle{
		Activities: []string{"yoga"},
		Movies:     []string{"Up"},
		Songs:      []string{"Vivaldi"},
		Food:       []string{"pho"},
	}
	require.NoError(t, store.Put(ctx, account.ID, memcache.CachedSuggestions{Bundle: bundle, Fingerprint: 11}, nil))

	got, err = store.Get(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int32(11), got.Fingerprint)
	assert.Equal(t, bundle, got.Bundle)
	assert.NotZero(t, got.UpdatedAt)

	stale := int32(10)
	err = store.Put(ctx, account.ID, memcache.CachedSuggestions{Bundle: bundle, Fingerprint: 12}, &stale)
	assert.ErrorIs(t, err, memcache.ErrCacheConflict)
	err = store.Put(ctx, account.ID, memcache.CachedSuggestions{Bundle: bundle, Fingerprint: 12}, nil)
	assert.ErrorIs(t, err, memcache.ErrCacheConflict)

	current := int32(11)
	require.NoError(t, store.Put(ctx, account.ID, memcache.CachedSuggestions{Bundle: bundle, Fingerprint: 12}, &current))

	require.NoError(t, store.Invalidate(ctx, account.ID))
	got, err = store.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var reloaded db_models.Account
	require.NoError(t, db.First(&reloaded, "id = ?", account.ID).Error)
	assert.Nil(t, reloaded.ContextFingerprint)
	assert.Nil(t, reloaded.SuggestionsUpdatedAt)

	// account rows are untouched otherwise
	assert.Equal(t, "cache@example.com", reloaded.Email)
}

func TestAccountSuggestionStore_ConditionalUpdateSQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	store := NewAccountSuggestionStore(gormDB)
	accountID := uuid.New()
	expected := int32(42)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "accounts" SET`) + `.*` + regexp.QuoteMeta(`WHERE id = $`) + `.*` + regexp.QuoteMeta(`AND context_fingerprint = $`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = store.Put(context.Background(), accountID, memcache.CachedSuggestions{Fingerprint: 43}, &expected)
	assert.ErrorIs(t, err, memcache.ErrCacheConflict)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "accounts" SET`) + `.*` + regexp.QuoteMeta(`AND context_fingerprint IS NULL`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.Put(context.Background(), accountID, memcache.CachedSuggestions{Fingerprint: 43}, nil)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
