package controllers_fx

import (
	"go.uber.org/fx"

	"moodlog/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPostController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewAnalyticsController),
	fx.Provide(controllers.NewTagController))
