package response_models

import "moodlog/internal/models/db_models"

type TraitAverages struct {
	Anxiety    float64 `json:"anxiety"`
	Depression float64 `json:"depression"`
	Stress     float64 `json:"stress"`
	Happiness  float64 `json:"happiness"`
	Energy     float64 `json:"energy"`
	Confidence float64 `json:"confidence"`
}

// TraitTrends holds raw scores of the most recent posts, oldest first.
type TraitTrends struct {
	Anxiety    []int `json:"anxiety"`
	Depression []int `json:"depression"`
	Stress     []int `json:"stress"`
	Happiness  []int `json:"happiness"`
	Energy     []int `json:"energy"`
	Confidence []int `json:"confidence"`
}

type AnalyticsReport struct {
	EntryCount     int                        `json:"entry_count"`
	Averages       TraitAverages              `json:"averages"`
	CategoryCounts map[string]int64           `json:"category_counts"`
	Trends         TraitTrends                `json:"trends"`
	Descriptions   []string                   `json:"descriptions"`
	Suggestions    db_models.SuggestionBundle `json:"suggestions"`
}
