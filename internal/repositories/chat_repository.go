package repositories

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moodlog/internal/models/db_models"
)

type ChatRepository interface {
	Insert(ctx context.Context, msg *db_models.ChatMessage) error
	// Recent returns the newest limit messages in oldest-first order, skipping excludeID if set.
	Recent(ctx context.Context, accountID uuid.UUID, excludeID *uuid.UUID, limit int) ([]db_models.ChatMessage, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Insert(ctx context.Context, msg *db_models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) Recent(ctx context.Context, accountID uuid.UUID, excludeID *uuid.UUID, limit int) ([]db_models.ChatMessage, error) {
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var msgs []db_models.ChatMessage
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	slices.Reverse(msgs)
	return msgs, nil
}

func (r *chatRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&db_models.ChatMessage{})
	return res.RowsAffected, res.Error
}
