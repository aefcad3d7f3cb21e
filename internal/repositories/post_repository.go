package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moodlog/internal/models/db_models"
)

type PostRepository interface {
	Insert(ctx context.Context, post *db_models.Post) error
	// FindByID only returns posts owned by accountID; (nil, nil) otherwise.
	FindByID(ctx context.Context, accountID, postID uuid.UUID) (*db_models.Post, error)
	// ListByAccount is newest-first. limit <= 0 means no limit.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Post, error)
	// Delete reports whether a row owned by accountID was removed.
	Delete(ctx context.Context, accountID, postID uuid.UUID) (bool, error)
	UpdateSuggestions(ctx context.Context, postID uuid.UUID, bundle db_models.SuggestionBundle) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (p *postRepository) Insert(ctx context.Context, post *db_models.Post) error {
	return p.db.WithContext(ctx).Create(post).Error
}

func (p *postRepository) FindByID(ctx context.Context, accountID, postID uuid.UUID) (*db_models.Post, error) {
	var post db_models.Post
	err := p.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", postID, accountID).
		First(&post).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

func (p *postRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Post, error) {
	var posts []db_models.Post
	q := p.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *postRepository) Delete(ctx context.Context, accountID, postID uuid.UUID) (bool, error) {
	res := p.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", postID, accountID).
		Delete(&db_models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (p *postRepository) UpdateSuggestions(ctx context.Context, postID uuid.UUID, bundle db_models.SuggestionBundle) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"suggestions":     datatypes.NewJSONType(bundle.Normalized()),
			"has_suggestions": true,
		}).Error
}
