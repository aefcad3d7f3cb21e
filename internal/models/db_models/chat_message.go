package db_models

import "github.com/google/uuid"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is append-only.
type ChatMessage struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	Role      ChatRole  `gorm:"type:varchar(16);not null"`
	Content   string    `gorm:"type:text;not null"`
}
