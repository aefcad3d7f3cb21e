package chat_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moodlog/internal/config"
	"moodlog/internal/repositories"
	"moodlog/internal/services"
	"moodlog/pkg/utils"
)

var Module = fx.Provide(
	provideChatRepo, provideChatService)

func provideChatRepo(db *gorm.DB) repositories.ChatRepository {
	return repositories.NewChatRepository(db)
}

func provideChatService(
	chatRepo repositories.ChatRepository,
	postRepo repositories.PostRepository,
	ai utils.GenerativeClient,
	cfg *config.Config,
	log *zap.Logger,
) services.ChatServiceInterface {
	return services.NewChatService(chatRepo, postRepo, ai, cfg.AITimeout(), cfg.Location(), log.Named("chat"))
}
