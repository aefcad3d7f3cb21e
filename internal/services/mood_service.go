package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"moodlog/internal/models/db_models"
	"moodlog/pkg/utils"
)

type MoodInput struct {
	Image    []byte
	MimeType string
	Caption  string
	Tags     []string
	// Prior posts, newest-first, used as narrative context.
	Prior []db_models.Post
}

type MoodResult struct {
	Scores           db_models.TraitScores
	Category         db_models.MoodCategory
	ShortDescription string
	Description      string
	Fallback         bool
}

type MoodServiceInterface interface {
	// Analyze never fails; AI errors produce FallbackMoodResult.
	Analyze(ctx context.Context, in MoodInput) MoodResult
	GenerateSuggestions(ctx context.Context, recent []db_models.Post) (db_models.SuggestionBundle, error)
}

type MoodService struct {
	ai      utils.GenerativeClient
	timeout time.Duration
	log     *zap.Logger
}

func NewMoodService(ai utils.GenerativeClient, timeout time.Duration, log *zap.Logger) MoodServiceInterface {
	return &MoodService{ai: ai, timeout: timeout, log: log}
}

func FallbackMoodResult() MoodResult {
	mid := db_models.MidTraitScore
	return MoodResult{
		Scores: db_models.TraitScores{
			Anxiety:    mid,
			Depression: mid,
			Stress:     mid,
			Happiness:  mid,
			Energy:     mid,
			Confidence: mid,
		},
		Category:         db_models.MoodNeutral,
		ShortDescription: "We couldn't read this moment",
		Description:      "Sorry, we weren't able to analyze this entry right now. Your post has been saved, and your thoughts still matter.",
		Fallback:         true,
	}
}

func (m *MoodService) Analyze(ctx context.Context, in MoodInput) MoodResult {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	raw, err := m.ai.GenerateWithImage(ctx, buildMoodPrompt(in), in.Image, in.MimeType)
	if err != nil {
		m.log.Warn("mood analysis failed, using fallback", zap.Error(err))
		return FallbackMoodResult()
	}

	result, err := DecodeMoodResponse(raw)
	if err != nil {
		m.log.Warn("mood analysis returned unusable output, using fallback", zap.Error(err))
		return FallbackMoodResult()
	}
	return *result
}

type moodWire struct {
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Scores           struct {
		Anxiety    *int `json:"anxiety"`
		Depression *int `json:"depression"`
		Stress     *int `json:"stress"`
		Happiness  *int `json:"happiness"`
		Energy     *int `json:"energy"`
		Confidence *int `json:"confidence"`
	} `json:"scores"`
	MoodCategory string `json:"mood_category"`
}

// DecodeMoodResponse returns utils.ErrMalformedAIResponse for anything that is not a complete, in-range judgment.
func DecodeMoodResponse(raw string) (*MoodResult, error) {
	var wire moodWire
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedAIResponse, err)
	}

	s := wire.Scores
	ptrs := []*int{s.Anxiety, s.Depression, s.Stress, s.Happiness, s.Energy, s.Confidence}
	for _, p := range ptrs {
		if p == nil {
			return nil, fmt.Errorf("%w: missing score", utils.ErrMalformedAIResponse)
		}
	}
	scores := db_models.TraitScores{
		Anxiety:    *s.Anxiety,
		Depression: *s.Depression,
		Stress:     *s.Stress,
		Happiness:  *s.Happiness,
		Energy:     *s.Energy,
		Confidence: *s.Confidence,
	}
	if !scores.InRange() {
		return nil, fmt.Errorf("%w: score out of range", utils.ErrMalformedAIResponse)
	}

	category := db_models.MoodCategory(strings.ToLower(strings.TrimSpace(wire.MoodCategory)))
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown mood category %q", utils.ErrMalformedAIResponse, wire.MoodCategory)
	}

	description := strings.TrimSpace(wire.Description)
	short := strings.TrimSpace(wire.ShortDescription)
	if description == "" || short == "" {
		return nil, fmt.Errorf("%w: empty description", utils.ErrMalformedAIResponse)
	}

	return &MoodResult{
		Scores:           scores,
		Category:         category,
		ShortDescription: short,
		Description:      description,
	}, nil
}

func (m *MoodService) GenerateSuggestions(ctx context.Context, recent []db_models.Post) (db_models.SuggestionBundle, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	raw, err := m.ai.GenerateText(ctx, buildSuggestionPrompt(recent))
	if err != nil {
		return db_models.SuggestionBundle{}, err
	}
	return DecodeSuggestionResponse(raw)
}

// DecodeSuggestionResponse requires every category to hold at least one non-blank item.
func DecodeSuggestionResponse(raw string) (db_models.SuggestionBundle, error) {
	var bundle db_models.SuggestionBundle
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &bundle); err != nil {
		return db_models.SuggestionBundle{}, fmt.Errorf("%w: %v", utils.ErrMalformedAIResponse, err)
	}

	bundle = db_models.SuggestionBundle{
		Activities: compactStrings(bundle.Activities),
		Movies:     compactStrings(bundle.Movies),
		Songs:      compactStrings(bundle.Songs),
		Food:       compactStrings(bundle.Food),
	}
	if !bundle.IsComplete() {
		return db_models.SuggestionBundle{}, fmt.Errorf("%w: empty suggestion category", utils.ErrMalformedAIResponse)
	}
	return bundle, nil
}

func compactStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
