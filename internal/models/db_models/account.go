package db_models

import "gorm.io/datatypes"

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	AvatarURL    string
	AvatarKey    string

	// Suggestion cache. ContextFingerprint == nil means "no cached bundle".
	CachedSuggestions    datatypes.JSONType[SuggestionBundle]
	ContextFingerprint   *int32
	SuggestionsUpdatedAt *int64
}
