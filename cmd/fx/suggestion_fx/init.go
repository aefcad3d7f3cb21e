package suggestion_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"moodlog/internal/repositories"
	"moodlog/internal/services"
	mem "moodlog/pkg/memcache"
)

var Module = fx.Provide(
	provideSuggestionService)

func provideSuggestionService(
	postRepo repositories.PostRepository,
	store mem.SuggestionStore,
	mood services.MoodServiceInterface,
	log *zap.Logger,
) services.SuggestionServiceInterface {
	return services.NewSuggestionService(postRepo, store, mood, log.Named("suggestions"))
}
