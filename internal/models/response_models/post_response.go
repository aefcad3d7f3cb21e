package response_models

import (
	"time"

	"moodlog/internal/models/db_models"
)

type PostResponse struct {
	ID               string                      `json:"id"`
	ImageURL         string                      `json:"image_url"`
	Caption          string                      `json:"caption"`
	Tags             []string                    `json:"tags"`
	Scores           db_models.TraitScores       `json:"scores"`
	MoodCategory     db_models.MoodCategory      `json:"mood_category"`
	ShortDescription string                      `json:"short_description"`
	Description      string                      `json:"description"`
	Suggestions      *db_models.SuggestionBundle `json:"suggestions,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
}

type TimelineDay struct {
	// Date is YYYY-MM-DD in the server's configured time zone.
	Date  string         `json:"date"`
	Posts []PostResponse `json:"posts"`
}
