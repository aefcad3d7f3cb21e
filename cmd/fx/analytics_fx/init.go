package analytics_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"moodlog/internal/repositories"
	"moodlog/internal/services"
)

var Module = fx.Provide(
	provideAnalyticsRepo, provideAnalyticsService,
)

func provideAnalyticsRepo(db *gorm.DB) repositories.AnalyticsRepository {
	return repositories.NewAnalyticsRepository(db)
}

func provideAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	postRepo repositories.PostRepository,
	suggestions services.SuggestionServiceInterface,
) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(analyticsRepo, postRepo, suggestions)
}
