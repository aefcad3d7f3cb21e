package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MoodCategory string

const (
	MoodVeryPositive MoodCategory = "very_positive"
	MoodPositive     MoodCategory = "positive"
	MoodNeutral      MoodCategory = "neutral"
	MoodNegative     MoodCategory = "negative"
	MoodVeryNegative MoodCategory = "very_negative"
)

// MoodCategories is ordered from most to least positive.
var MoodCategories = []MoodCategory{
	MoodVeryPositive,
	MoodPositive,
	MoodNeutral,
	MoodNegative,
	MoodVeryNegative,
}

func (m MoodCategory) Valid() bool {
	for _, c := range MoodCategories {
		if c == m {
			return true
		}
	}
	return false
}

const (
	MinTraitScore = 0
	MaxTraitScore = 10
	MidTraitScore = 5
)

// TraitScores are integers in [MinTraitScore, MaxTraitScore].
type TraitScores struct {
	Anxiety    int `json:"anxiety"`
	Depression int `json:"depression"`
	Stress     int `json:"stress"`
	Happiness  int `json:"happiness"`
	Energy     int `json:"energy"`
	Confidence int `json:"confidence"`
}

func (s TraitScores) Values() [6]int {
	return [6]int{s.Anxiety, s.Depression, s.Stress, s.Happiness, s.Energy, s.Confidence}
}

func (s TraitScores) InRange() bool {
	for _, v := range s.Values() {
		if v < MinTraitScore || v > MaxTraitScore {
			return false
		}
	}
	return true
}

type Post struct {
	BaseModel
	AccountID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ImageURL         string
	ImageKey         string
	Caption          string `gorm:"type:text;not null"`
	Tags             datatypes.JSONType[[]string]
	Scores           TraitScores  `gorm:"embedded;embeddedPrefix:score_"`
	MoodCategory     MoodCategory `gorm:"type:varchar(20)"`
	ShortDescription string
	Description      string `gorm:"type:text"`

	// Point-in-time snapshot of the account's suggestions when the post was written.
	Suggestions    datatypes.JSONType[SuggestionBundle]
	HasSuggestions bool
}
