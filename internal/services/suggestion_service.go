package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"moodlog/internal/models/db_models"
	"moodlog/internal/repositories"
	"moodlog/pkg/memcache"
	"moodlog/pkg/utils"
)

type SuggestionSource string

const (
	SuggestionFromCache SuggestionSource = "cache"
	SuggestionGenerated SuggestionSource = "generated"
	SuggestionFallback  SuggestionSource = "fallback"
	SuggestionNoContext SuggestionSource = "empty"
)

type SuggestionResult struct {
	Bundle      db_models.SuggestionBundle
	Source      SuggestionSource
	Fingerprint int32
}

// Persistable reports whether the bundle reflects real AI output for the current context.
func (r SuggestionResult) Persistable() bool {
	return r.Source == SuggestionFromCache || r.Source == SuggestionGenerated
}

type SuggestionServiceInterface interface {
	GetSuggestions(ctx context.Context, accountID uuid.UUID) (*SuggestionResult, error)
	Invalidate(ctx context.Context, accountID uuid.UUID) error
}

type SuggestionService struct {
	postRepo repositories.PostRepository
	store    memcache.SuggestionStore
	mood     MoodServiceInterface
	log      *zap.Logger
	group    singleflight.Group
}

func NewSuggestionService(
	postRepo repositories.PostRepository,
	store memcache.SuggestionStore,
	mood MoodServiceInterface,
	log *zap.Logger,
) SuggestionServiceInterface {
	return &SuggestionService{
		postRepo: postRepo,
		store:    store,
		mood:     mood,
		log:      log,
	}
}

func FallbackSuggestionBundle() db_models.SuggestionBundle {
	return db_models.SuggestionBundle{
		Activities: []string{"Take a short walk outside", "Write down three things you are grateful for", "Call or message a friend"},
		Movies:     []string{"Paddington 2", "The Secret Life of Walter Mitty", "Spirited Away"},
		Songs:      []string{"Here Comes the Sun - The Beatles", "Three Little Birds - Bob Marley", "Good as Hell - Lizzo"},
		Food:       []string{"A warm bowl of soup", "Fresh fruit with yogurt", "A cup of herbal tea"},
	}
}

func (s *SuggestionService) GetSuggestions(ctx context.Context, accountID uuid.UUID) (*SuggestionResult, error) {
	recent, err := s.postRepo.ListByAccount(ctx, accountID, utils.FingerprintWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if len(recent) == 0 {
		return &SuggestionResult{Bundle: db_models.EmptySuggestionBundle(), Source: SuggestionNoContext}, nil
	}

	fingerprint := utils.ContextFingerprint(recent)

	cached, err := s.store.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if cached != nil && cached.Fingerprint == fingerprint && cached.Bundle.IsComplete() {
		return &SuggestionResult{Bundle: cached.Bundle, Source: SuggestionFromCache, Fingerprint: fingerprint}, nil
	}

	var expected *int32
	if cached != nil {
		stored := cached.Fingerprint
		expected = &stored
	}

	key := accountID.String() + ":" + strconv.FormatInt(int64(fingerprint), 10)
	// callers share this call, so it must not end with the first caller's request
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.regenerate(shared, accountID, recent, fingerprint, expected), nil
	})
	result := *v.(*SuggestionResult)
	return &result, nil
}

func (s *SuggestionService) regenerate(ctx context.Context, accountID uuid.UUID, recent []db_models.Post, fingerprint int32, expected *int32) *SuggestionResult {
	bundle, err := s.mood.GenerateSuggestions(ctx, recent)
	if err != nil {
		s.log.Warn("suggestion generation failed, using fallback",
			zap.String("account_id", accountID.String()), zap.Error(err))
		return &SuggestionResult{Bundle: FallbackSuggestionBundle(), Source: SuggestionFallback, Fingerprint: fingerprint}
	}

	err = s.store.Put(ctx, accountID, memcache.CachedSuggestions{Bundle: bundle, Fingerprint: fingerprint}, expected)
	switch {
	case errors.Is(err, memcache.ErrCacheConflict):
		s.log.Debug("suggestion cache changed concurrently, dropping write",
			zap.String("account_id", accountID.String()))
	case err != nil:
		s.log.Warn("failed to store suggestions",
			zap.String("account_id", accountID.String()), zap.Error(err))
	}

	return &SuggestionResult{Bundle: bundle, Source: SuggestionGenerated, Fingerprint: fingerprint}
}

func (s *SuggestionService) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	if err := s.store.Invalidate(ctx, accountID); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}
