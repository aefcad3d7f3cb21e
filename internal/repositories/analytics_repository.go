package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "moodlog/internal/models/db_models"
)

type AnalyticsRepository interface {
	CountPosts(ctx context.Context, accountID uuid.UUID) (int64, error)
	TraitAverages(ctx context.Context, accountID uuid.UUID) (*TraitAverageRow, error)
	CountByCategory(ctx context.Context, accountID uuid.UUID) ([]CategoryCountRow, error)
	// DistinctDescriptions returns up to limit non-empty descriptions across all posts,
	// ordered by their newest occurrence.
	DistinctDescriptions(ctx context.Context, accountID uuid.UUID, limit int) ([]string, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// ---------- Row helpers ----------
type TraitAverageRow struct {
	Anxiety    float64 `gorm:"column:anxiety"`
	Depression float64 `gorm:"column:depression"`
	Stress     float64 `gorm:"column:stress"`
	Happiness  float64 `gorm:"column:happiness"`
	Energy     float64 `gorm:"column:energy"`
	Confidence float64 `gorm:"column:confidence"`
}

type CategoryCountRow struct {
	Category dbm.MoodCategory `gorm:"column:category"`
	Count    int64            `gorm:"column:count"`
}

// ---------- Counts ----------
func (r *analyticsRepository) CountPosts(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Post{}).
		Where("account_id = ?", accountID).
		Count(&n).Error
	return n, err
}

// ---------- Aggregates ----------
func (r *analyticsRepository) TraitAverages(ctx context.Context, accountID uuid.UUID) (*TraitAverageRow, error) {
	var row TraitAverageRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Post{}).
		Select(`COALESCE(AVG(score_anxiety), 0) AS anxiety,
			COALESCE(AVG(score_depression), 0) AS depression,
			COALESCE(AVG(score_stress), 0) AS stress,
			COALESCE(AVG(score_happiness), 0) AS happiness,
			COALESCE(AVG(score_energy), 0) AS energy,
			COALESCE(AVG(score_confidence), 0) AS confidence`).
		Where("account_id = ?", accountID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *analyticsRepository) CountByCategory(ctx context.Context, accountID uuid.UUID) ([]CategoryCountRow, error) {
	var rows []CategoryCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Post{}).
		Select("mood_category AS category, COUNT(*) AS count").
		Where("account_id = ?", accountID).
		Group("mood_category").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) DistinctDescriptions(ctx context.Context, accountID uuid.UUID, limit int) ([]string, error) {
	descriptions := []string{}
	err := r.db.WithContext(ctx).
		Model(&dbm.Post{}).
		Where("account_id = ? AND description <> ''", accountID).
		Group("description").
		Order("MAX(created_at) DESC").
		Limit(limit).
		Pluck("description", &descriptions).Error
	return descriptions, err
}
