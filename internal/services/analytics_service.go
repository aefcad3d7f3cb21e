package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	dbm "moodlog/internal/models/db_models"
	resp "moodlog/internal/models/response_models"
	"moodlog/internal/repositories"
	"moodlog/pkg/utils"
)

const (
	trendWindow     = 10
	maxDescriptions = 5
)

type AnalyticsServiceInterface interface {
	BuildReport(ctx context.Context, accountID uuid.UUID) (*resp.AnalyticsReport, error)
}

type analyticsService struct {
	repo        repositories.AnalyticsRepository
	postRepo    repositories.PostRepository
	suggestions SuggestionServiceInterface
}

func NewAnalyticsService(
	repo repositories.AnalyticsRepository,
	postRepo repositories.PostRepository,
	suggestions SuggestionServiceInterface,
) AnalyticsServiceInterface {
	return &analyticsService{repo: repo, postRepo: postRepo, suggestions: suggestions}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func emptyReport() *resp.AnalyticsReport {
	counts := make(map[string]int64, len(dbm.MoodCategories))
	for _, c := range dbm.MoodCategories {
		counts[string(c)] = 0
	}
	return &resp.AnalyticsReport{
		CategoryCounts: counts,
		Trends: resp.TraitTrends{
			Anxiety:    []int{},
			Depression: []int{},
			Stress:     []int{},
			Happiness:  []int{},
			Energy:     []int{},
			Confidence: []int{},
		},
		Descriptions: []string{},
		Suggestions:  dbm.EmptySuggestionBundle(),
	}
}

func (s *analyticsService) BuildReport(ctx context.Context, accountID uuid.UUID) (*resp.AnalyticsReport, error) {
	report := emptyReport()

	// ---------- Counts ----------
	total, err := s.repo.CountPosts(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if total == 0 {
		return report, nil
	}
	report.EntryCount = int(total)

	rows, err := s.repo.CountByCategory(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	for _, r := range rows {
		if r.Category.Valid() {
			report.CategoryCounts[string(r.Category)] = r.Count
		}
	}

	// ---------- Averages ----------
	avg, err := s.repo.TraitAverages(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	report.Averages = resp.TraitAverages{
		Anxiety:    round1(avg.Anxiety),
		Depression: round1(avg.Depression),
		Stress:     round1(avg.Stress),
		Happiness:  round1(avg.Happiness),
		Energy:     round1(avg.Energy),
		Confidence: round1(avg.Confidence),
	}

	// ---------- Trends ----------
	recent, err := s.postRepo.ListByAccount(ctx, accountID, trendWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	for i := len(recent) - 1; i >= 0; i-- {
		sc := recent[i].Scores
		t := &report.Trends
		t.Anxiety = append(t.Anxiety, sc.Anxiety)
		t.Depression = append(t.Depression, sc.Depression)
		t.Stress = append(t.Stress, sc.Stress)
		t.Happiness = append(t.Happiness, sc.Happiness)
		t.Energy = append(t.Energy, sc.Energy)
		t.Confidence = append(t.Confidence, sc.Confidence)
	}

	// ---------- Descriptions ----------
	descriptions, err := s.repo.DistinctDescriptions(ctx, accountID, maxDescriptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if descriptions != nil {
		report.Descriptions = descriptions
	}

	// ---------- Suggestions ----------
	suggestions, err := s.suggestions.GetSuggestions(ctx, accountID)
	if err != nil {
		return nil, err
	}
	report.Suggestions = suggestions.Bundle

	return report, nil
}
