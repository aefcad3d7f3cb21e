package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodlog/internal/api/controllers"
	"moodlog/internal/config"
	"moodlog/pkg/memcache"
	"moodlog/pkg/middleware"
	"moodlog/pkg/utils"
)

// Controllers groups the handlers mounted by RegisterRoutes.
type Controllers struct {
	Account   *controllers.AccountController
	Post      *controllers.PostController
	Chat      *controllers.ChatController
	Analytics *controllers.AnalyticsController
	Tags      *controllers.TagController
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	jwtManager *utils.JWTManager,
	denylist memcache.TokenDenylist,
	accountController *controllers.AccountController,
	postController *controllers.PostController,
	chatController *controllers.ChatController,
	analyticsController *controllers.AnalyticsController,
	tagsController *controllers.TagController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	if strings.EqualFold(cfg.StorageBackend, "disk") {
		r.Static("/uploads", cfg.UploadDir)
	}

	RegisterRoutes(r, middleware.JWTAuthMiddleware(jwtManager, denylist), Controllers{
		Account:   accountController,
		Post:      postController,
		Chat:      chatController,
		Analytics: analyticsController,
		Tags:      tagsController,
	})

	return r
}

func RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, c Controllers) {
	r.GET("/healthz", func(ctx *gin.Context) {
		utils.RespondSuccess(ctx, gin.H{"status": "ok"}, "healthy")
	})

	r.GET("/tags", c.Tags.ListAllTagsHandler)

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", c.Account.Register)
	accountGroup.POST("/login", c.Account.Login)
	accountGroup.POST("/logout", auth, c.Account.Logout)
	accountGroup.GET("/me", auth, c.Account.Me)
	accountGroup.PUT("/me/avatar", auth, c.Account.UpdateAvatar)

	postGroup := r.Group("/posts", auth)
	postGroup.GET("", c.Post.ListPosts)
	postGroup.POST("", c.Post.CreatePost)
	postGroup.GET("/timeline", c.Post.Timeline)
	postGroup.GET("/:id", c.Post.GetPost)
	postGroup.DELETE("/:id", c.Post.DeletePost)

	r.GET("/analytics", auth, c.Analytics.GetAnalytics)

	chatGroup := r.Group("/chat", auth)
	chatGroup.GET("/messages", c.Chat.History)
	chatGroup.POST("/messages", c.Chat.Send)
	chatGroup.DELETE("/messages", c.Chat.Clear)
}
