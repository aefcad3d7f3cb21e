package post_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moodlog/internal/config"
	"moodlog/internal/repositories"
	"moodlog/internal/services"
	"moodlog/internal/storage"
)

var Module = fx.Provide(
	providePostRepo, providePostService)

func providePostRepo(db *gorm.DB) repositories.PostRepository {
	return repositories.NewPostRepository(db)
}

func providePostService(
	postRepo repositories.PostRepository,
	tags services.TagServiceInterface,
	mood services.MoodServiceInterface,
	suggestions services.SuggestionServiceInterface,
	store storage.ObjectStore,
	cfg *config.Config,
	log *zap.Logger,
) services.PostServiceInterface {
	return services.NewPostService(postRepo, tags, mood, suggestions, store, cfg.MaxUploadBytes(), cfg.Location(), log.Named("post"))
}
