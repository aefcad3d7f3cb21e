package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"moodlog/cmd/fx/account_fx"
	"moodlog/cmd/fx/ai_fx"
	"moodlog/cmd/fx/analytics_fx"
	"moodlog/cmd/fx/chat_fx"
	"moodlog/cmd/fx/config_fx"
	"moodlog/cmd/fx/controllers_fx"
	"moodlog/cmd/fx/db_fx"
	"moodlog/cmd/fx/memcache_fx"
	"moodlog/cmd/fx/post_fx"
	"moodlog/cmd/fx/storage_fx"
	"moodlog/cmd/fx/suggestion_fx"
	"moodlog/cmd/fx/tagsfx"
	"moodlog/internal/config"
)

// @title Moodlog API
// @version 1.0
// @description Photo journal with AI mood analysis, suggestions and a companion chat.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		storage_fx.Module,
		ai_fx.Module,
		tagsfx.Module,
		account_fx.Module,
		post_fx.Module,
		suggestion_fx.Module,
		chat_fx.Module,
		analytics_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
