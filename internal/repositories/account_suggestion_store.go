package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moodlog/internal/models/db_models"
	"moodlog/pkg/memcache"
)

// accountSuggestionStore keeps the suggestion cache on the account row itself.
type accountSuggestionStore struct {
	db *gorm.DB
}

func NewAccountSuggestionStore(db *gorm.DB) memcache.SuggestionStore {
	return &accountSuggestionStore{db: db}
}

func (s *accountSuggestionStore) Get(ctx context.Context, accountID uuid.UUID) (*memcache.CachedSuggestions, error) {
	var account db_models.Account
	err := s.db.WithContext(ctx).
		Select("id", "cached_suggestions", "context_fingerprint", "suggestions_updated_at").
		First(&account, "id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if account.ContextFingerprint == nil {
		return nil, nil
	}

	entry := &memcache.CachedSuggestions{
		Bundle:      account.CachedSuggestions.Data().Normalized(),
		Fingerprint: *account.ContextFingerprint,
	}
	if account.SuggestionsUpdatedAt != nil {
		entry.UpdatedAt = *account.SuggestionsUpdatedAt
	}
	return entry, nil
}

// Put is a compare-and-set on context_fingerprint; zero rows affected means another writer got there first.
func (s *accountSuggestionStore) Put(ctx context.Context, accountID uuid.UUID, entry memcache.CachedSuggestions, expected *int32) error {
	if entry.UpdatedAt == 0 {
		entry.UpdatedAt = time.Now().UnixMilli()
	}

	q := s.db.WithContext(ctx).Model(&db_models.Account{}).Where("id = ?", accountID)
	if expected == nil {
		q = q.Where("context_fingerprint IS NULL")
	} else {
		q = q.Where("context_fingerprint = ?", *expected)
	}

	res := q.Updates(map[string]interface{}{
		"cached_suggestions":     datatypes.NewJSONType(entry.Bundle.Normalized()),
		"context_fingerprint":    entry.Fingerprint,
		"suggestions_updated_at": entry.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return memcache.ErrCacheConflict
	}
	return nil
}

func (s *accountSuggestionStore) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"cached_suggestions":     datatypes.NewJSONType(db_models.EmptySuggestionBundle()),
			"context_fingerprint":    gorm.Expr("NULL"),
			"suggestions_updated_at": gorm.Expr("NULL"),
		}).Error
}
