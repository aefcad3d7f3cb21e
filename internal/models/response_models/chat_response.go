package response_models

import (
	"time"

	"moodlog/internal/models/db_models"
)

type ChatMessageResponse struct {
	ID        string             `json:"id"`
	Role      db_models.ChatRole `json:"role"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
}
